package model

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope identifies the conversation a request belongs to.
// ChatID is the only key the task domain partitions on.
type Scope struct {
	ChatID   int64
	UserID   int64
	Username string
}
