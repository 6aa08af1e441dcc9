package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/cobreuse/core/model"
)

// TravelCheck pins the flight time of one launcher column and target.
type TravelCheck struct {
	Col    int     `yaml:"col"`
	Target float64 `yaml:"target"`
	Time   int     `yaml:"time"`
}

type Expected struct {
	// Success holds one entry per operation in authoring order.
	Success []bool `yaml:"success"`
	// Launchers holds "row-col" per operation, empty when none was assigned.
	Launchers []string `yaml:"launchers,omitempty"`
	// FireTimes holds the fire time per operation, 0 when none.
	FireTimes []int `yaml:"fire_times,omitempty"`
	// NextAvailable lists "row-col@time" entries of the padded report.
	NextAvailable []string      `yaml:"next_available,omitempty"`
	Travel        []TravelCheck `yaml:"travel,omitempty"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Plan        model.Plan `yaml:"plan"`
	Expected    Expected   `yaml:"expected"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
