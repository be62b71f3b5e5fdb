// Package scenarios replays YAML dispatch scenarios against a fresh city
// network and checks every admission.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/smarthospital/core/city"
	"github.com/kilianp07/smarthospital/core/graph"
	"github.com/kilianp07/smarthospital/core/model"
)

// NoRoute marks a missing area to hospital route in a scenario matrix.
const NoRoute = -1

type HospitalDef struct {
	Name     string `yaml:"name"`
	Beds     int    `yaml:"beds"`
	Occupied int    `yaml:"occupied,omitempty"`
}

type ReportDef struct {
	Area     int    `yaml:"area"`
	Name     string `yaml:"name,omitempty"`
	Severity string `yaml:"severity,omitempty"`
}

// ExpectedAdmission is matched against the admissions of one step, in
// processing order. Hospital is a name; Bed and Distance are checked only
// for admitted patients.
type ExpectedAdmission struct {
	Patient  string        `yaml:"patient"`
	Outcome  model.Outcome `yaml:"outcome"`
	Hospital string        `yaml:"hospital,omitempty"`
	Bed      int           `yaml:"bed,omitempty"`
	Distance int           `yaml:"distance,omitempty"`
}

// Step queues its reports, then drains the queue.
type Step struct {
	Reports []ReportDef         `yaml:"reports"`
	Expect  []ExpectedAdmission `yaml:"expect"`
}

type Scenario struct {
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description,omitempty"`
	Hospitals     []HospitalDef  `yaml:"hospitals"`
	Areas         []string       `yaml:"areas"`
	Distances     [][]int        `yaml:"distances"`
	Steps         []Step         `yaml:"steps"`
	FinalFreeBeds map[string]int `yaml:"final_free_beds,omitempty"`
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
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario name is required", path)
	}
	return &sc, nil
}

// Network builds the city described by the scenario.
func (s *Scenario) Network() (*city.Network, error) {
	specs := make([]city.HospitalSpec, len(s.Hospitals))
	for i, h := range s.Hospitals {
		specs[i] = city.HospitalSpec{Name: h.Name, TotalBeds: h.Beds, Occupied: h.Occupied}
	}
	dist := make([][]int, len(s.Distances))
	for a, row := range s.Distances {
		dist[a] = make([]int, len(row))
		for h, d := range row {
			if d == NoRoute {
				d = graph.Infinity
			}
			dist[a][h] = d
		}
	}
	return city.New(s.Areas, specs, dist)
}
