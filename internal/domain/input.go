package domain

// Configuration is a batch input file: named calculations to run in one go.
type Configuration struct {
	Metadata    InputMetadata          `yaml:"metadata" json:"metadata"`
	Levy        []NamedLevyRequest     `yaml:"levy" json:"levy"`
	Maintenance []NamedMaintenanceCase `yaml:"maintenance" json:"maintenance"`
}

// InputMetadata describes a batch file.
type InputMetadata struct {
	Description string `yaml:"description" json:"description"`
	RatesFile   string `yaml:"rates_file,omitempty" json:"rates_file,omitempty"`
}

// NamedLevyRequest is a levy calculation with a caller-chosen name.
type NamedLevyRequest struct {
	Name        string `yaml:"name" json:"name"`
	LevyRequest `yaml:",inline"`
}

// NamedMaintenanceCase is a maintenance calculation with a caller-chosen name.
type NamedMaintenanceCase struct {
	Name               string `yaml:"name" json:"name"`
	MaintenanceRequest `yaml:",inline"`
}

// BatchResults holds the outcome of running a Configuration.
type BatchResults struct {
	Description string                   `json:"description"`
	Levy        []NamedLevyResult        `json:"levy"`
	Maintenance []NamedMaintenanceResult `json:"maintenance"`
}

// NamedLevyResult pairs a levy result with its input name.
type NamedLevyResult struct {
	Name   string     `json:"name"`
	Result LevyResult `json:"result"`
}

// NamedMaintenanceResult pairs a maintenance result with its input name.
type NamedMaintenanceResult struct {
	Name   string            `json:"name"`
	Result MaintenanceResult `json:"result"`
}
