package domain

// Building reference data, owned by the administration screens and
// read-only for this service.
type Building struct {
	ID      string
	Name    string
	Address string
}

// An Apartment belongs to exactly one Building.
type Apartment struct {
	ID         string
	Number     string
	Floor      int
	BuildingID string

	Building *Building
}
