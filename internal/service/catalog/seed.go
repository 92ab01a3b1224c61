package catalog

import "DriveLine/entity"

// SeedModels is the showroom lineup loaded into an empty catalog.
func SeedModels() []entity.CarModel {
	return []entity.CarModel{
		{
			ID:          "car_xpander_gls",
			Name:        "Mitsubishi Xpander GLS",
			Price:       1266000,
			DpPercent:   0.20,
			Type:        "MPV",
			Description: "The reliable 7-seater MPV perfect for families, featuring a bold dynamic shield design.",
			ImageUrl:    "https://placehold.co/600x400?text=Mitsubishi+Xpander",
			Specs: entity.CarSpecs{
				Engine:          "1.5L MIVEC DOHC 16-Valve",
				Transmission:    "4-Speed Automatic",
				SeatingCapacity: 7,
				FuelType:        "Gasoline",
				Power:           "104 PS @ 6000 rpm",
				Torque:          "141 Nm @ 4000 rpm",
			},
		},
		{
			ID:          "car_montero_gt",
			Name:        "Mitsubishi Montero Sport GT v2",
			Price:       2428000,
			DpPercent:   0.20,
			Type:        "SUV",
			Description: "A premium SUV that combines power, luxury, and advanced safety features.",
			ImageUrl:    "https://placehold.co/600x400?text=Montero+Sport",
			Specs: entity.CarSpecs{
				Engine:          "2.4L MIVEC Diesel",
				Transmission:    "8-Speed Automatic",
				SeatingCapacity: 7,
				FuelType:        "Diesel",
				Power:           "181 PS @ 3500 rpm",
				Torque:          "430 Nm @ 2500 rpm",
			},
		},
		{
			ID:          "car_mirage_g4",
			Name:        "Mitsubishi Mirage G4 GLS",
			Price:       934000,
			DpPercent:   0.20,
			Type:        "Sedan",
			Description: "Practical, fuel-efficient, and stylish sedan for city driving.",
			ImageUrl:    "https://placehold.co/600x400?text=Mirage+G4",
			Specs: entity.CarSpecs{
				Engine:          "1.2L MIVEC DOHC 12-Valve",
				Transmission:    "CVT",
				SeatingCapacity: 5,
				FuelType:        "Gasoline",
				Power:           "78 PS @ 6000 rpm",
				Torque:          "100 Nm @ 4000 rpm",
			},
		},
		{
			ID:          "car_triton_athlete",
			Name:        "Mitsubishi Triton Athlete 4WD",
			Price:       1956000,
			DpPercent:   0.20,
			Type:        "Pickup",
			Description: "Tough, durable, and ready for any adventure or heavy-duty task.",
			ImageUrl:    "https://placehold.co/600x400?text=Triton+Athlete",
			Specs: entity.CarSpecs{
				Engine:          "2.4L Bi-Turbo Diesel",
				Transmission:    "6-Speed Automatic",
				SeatingCapacity: 5,
				FuelType:        "Diesel",
				Power:           "204 PS @ 3500 rpm",
				Torque:          "470 Nm @ 1500-2750 rpm",
			},
		},
	}
}
