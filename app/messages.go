package app

import (
	"fmt"

	"github.com/kilianp07/smarthospital/core/city"
	"github.com/kilianp07/smarthospital/core/dispatch"
	"github.com/kilianp07/smarthospital/core/model"
)

// AdmissionMessage describes an admission for the operator.
func AdmissionMessage(net *city.Network, adm dispatch.Admission) string {
	p := adm.Patient
	switch adm.Outcome {
	case model.OutcomeAdmitted:
		hospital := fmt.Sprintf("hospital %d", adm.Hospital)
		if h, err := net.Hospital(adm.Hospital); err == nil {
			hospital = h.Name
		}
		return fmt.Sprintf("Patient %s (id %d, severity %d) admitted to %s (bed %d), distance %d km",
			p.Name, p.ID, int(p.Severity), hospital, adm.Bed, adm.Distance)
	case model.OutcomeNoCapacity:
		area := fmt.Sprintf("area %d", p.Area)
		if a, err := net.Area(p.Area); err == nil {
			area = a.Name
		}
		return fmt.Sprintf("All hospitals reachable from %s are full. Cannot admit patient %s (id %d)",
			area, p.Name, p.ID)
	case model.OutcomeInternalError:
		return "Unexpected: nearest hospital reported free but allocation failed."
	default:
		return fmt.Sprintf("Error running routing algorithm for patient %d: %v", p.ID, adm.Err)
	}
}
