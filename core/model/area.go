package model

// Area is a city zone that can originate patient reports. Its ID doubles as
// its node index in the city graph.
type Area struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
