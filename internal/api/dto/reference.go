package dto

import "condo-package-service/internal/domain"

type ListBuildingsResponse struct {
	Buildings []BuildingResponse `json:"buildings"`
}

type ListApartmentsResponse struct {
	Apartments []ApartmentResponse `json:"apartments"`
}

func FromBuildings(buildings []*domain.Building) ListBuildingsResponse {
	res := ListBuildingsResponse{Buildings: make([]BuildingResponse, 0, len(buildings))}
	for _, b := range buildings {
		res.Buildings = append(res.Buildings, BuildingResponse{
			ID:      b.ID,
			Name:    b.Name,
			Address: b.Address,
		})
	}
	return res
}

func FromApartments(apartments []*domain.Apartment) ListApartmentsResponse {
	res := ListApartmentsResponse{Apartments: make([]ApartmentResponse, 0, len(apartments))}
	for _, a := range apartments {
		apt := ApartmentResponse{
			ID:     a.ID,
			Number: a.Number,
			Floor:  a.Floor,
		}
		if a.Building != nil {
			apt.Building = &BuildingResponse{
				ID:      a.Building.ID,
				Name:    a.Building.Name,
				Address: a.Building.Address,
			}
		}
		res.Apartments = append(res.Apartments, apt)
	}
	return res
}
