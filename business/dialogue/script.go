package dialogue

import (
	"fmt"
	"strings"
)

// Script holds the outbound wording of a call. Every line is plain text.
type Script struct {
	BankName string
}

func (s Script) bank() string {
	if s.BankName == "" {
		return "SecureBank"
	}
	return s.BankName
}

func (s Script) Greeting() string {
	return fmt.Sprintf("Hello, this is the Fraud Detection Department from %s. "+
		"I'm calling about some unusual activity on your account. "+
		"For security purposes, may I have your full name please?", s.bank())
}

func (s Script) AskNameAgain() string {
	return "Sorry, I didn't catch that. Could you please tell me your full name?"
}

func (s Script) NotFound(name string) string {
	return fmt.Sprintf("I apologize, but I cannot find an account under the name %s. "+
		"Please verify the spelling or contact our customer service line. Goodbye.", name)
}

func (s Script) AlreadyReviewed() string {
	return "Our records show this case has already been reviewed, so no further action is needed today. Goodbye."
}

func (s Script) SecurityQuestion(name, question string) string {
	return fmt.Sprintf("Thank you, %s. To verify your identity, please answer your security question. %s",
		firstName(name), question)
}

func (s Script) RepeatQuestion(question string) string {
	return fmt.Sprintf("Please answer your security question. %s", question)
}

func (s Script) Retry(remaining int, question string) string {
	noun := "attempts"
	if remaining == 1 {
		noun = "attempt"
	}
	return fmt.Sprintf("I'm sorry, that answer doesn't match our records. You have %d %s remaining. %s",
		remaining, noun, question)
}

func (s Script) LockedOut() string {
	return "I'm sorry, but for security reasons I cannot proceed without proper verification. " +
		"Please visit your nearest branch or call our customer service line. Goodbye."
}

func (s Script) Verified() string {
	return "Thank you for confirming your identity."
}

func (s Script) ConfirmPrompt() string {
	return "Did you make this transaction? Please answer yes or no."
}

func (s Script) ConfirmAgain() string {
	return "I'm sorry, I need a clear yes or no. Did you make this transaction?"
}

func (s Script) MarkedSafe(cardEnding string) string {
	return fmt.Sprintf("Thank you for confirming. We've marked this as a legitimate transaction "+
		"and your card%s remains active. Have a great day!", cardSuffix(cardEnding))
}

func (s Script) CardBlocked(cardEnding string) string {
	return fmt.Sprintf("I understand. We've immediately blocked your card%s and will issue a replacement. "+
		"A dispute has been filed and you will not be charged for this transaction. Goodbye.", cardSuffix(cardEnding))
}

func (s Script) Apology() string {
	return "I'm sorry, we're experiencing a technical problem and can't complete this call right now. " +
		"Please call our customer service line. Goodbye."
}

// =====================================================================================================================

func cardSuffix(cardEnding string) string {
	if cardEnding = strings.TrimSpace(cardEnding); cardEnding == "" {
		return ""
	}
	return " ending in " + cardEnding
}

func firstName(name string) string {
	if f := strings.Fields(name); len(f) > 0 {
		return f[0]
	}
	return name
}
