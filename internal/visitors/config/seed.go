package config

// SeedConfig управляет заполнением базы тестовыми данными при запуске.
// Если задан Token, пользователь берется из него, а не из ActorID.
type SeedConfig struct {
	Enabled         bool   `yaml:"enabled" env:"VISITORS_SEED_ENABLED" env-default:"false"`
	ActorID         string `yaml:"actor_id" env:"VISITORS_SEED_ACTOR_ID" env-default:"system"`
	Token           string `yaml:"token" env:"VISITORS_SEED_TOKEN" env-default:""`
	Departments     int    `yaml:"departments" env:"VISITORS_SEED_DEPARTMENTS" env-default:"15"`
	VisitorsPerType int    `yaml:"visitors_per_type" env:"VISITORS_SEED_VISITORS_PER_TYPE" env-default:"100"`
	RandomSeed      uint64 `yaml:"random_seed" env:"VISITORS_SEED_RANDOM_SEED" env-default:"1"`
}
