package dispatch

// DefaultFirstPatientID is the id given to the first reported patient.
const DefaultFirstPatientID = 1001

// Config defines dispatch-related settings.
type Config struct {
	FirstPatientID int `json:"first_patient_id"`
	QueueCapacity  int `json:"queue_capacity"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.FirstPatientID <= 0 {
		c.FirstPatientID = DefaultFirstPatientID
	}
}
