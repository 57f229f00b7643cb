package config

type Config struct {
	Profiles []Profile `yaml:"profiles"`
}

// Profile is the wording and policy of one calling bank.
type Profile struct {
	ID          string   `yaml:"id"`
	BankName    string   `yaml:"bankName"`
	MaxAttempts int      `yaml:"maxAttempts"`
	Language    string   `yaml:"language"`
	Keywords    Keywords `yaml:"keywords"`
}

type Keywords struct {
	Affirmative []string `yaml:"affirmative"`
	Negative    []string `yaml:"negative"`
}
