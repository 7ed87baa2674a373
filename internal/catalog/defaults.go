package catalog

// Default returns the built-in mock records
func Default() *Catalog {
	return &Catalog{
		Cities: []string{
			"Addis Ababa",
			"Dire Dawa",
			"Mekelle",
			"Gondar",
			"Bahir Dar",
			"Hawassa",
			"Jimma",
			"Adama",
		},
		Listings: []Listing{
			{
				ID:          "1",
				Title:       "Toyota Vitz 2018 Compact",
				Price:       "1,200,000",
				Currency:    "ETB",
				Location:    "Bole, Addis Ababa",
				Image:       "https://picsum.photos/400/300?random=1",
				Category:    CategoryCars,
				Description: "Excellent condition, low mileage, first owner. Automatic transmission.",
				Seller:      Seller{Name: "Abebe Bikila", Verified: true, Phone: "0911234567", Rating: 4.8},
				PostedAt:    "2 hrs ago",
				Features:    []string{"Automatic", "35,000 km", "Silver"},
			},
			{
				ID:          "2",
				Title:       "Modern Apartment for Rent",
				Price:       "45,000",
				Currency:    "ETB/mo",
				Location:    "Kazanchis, Addis Ababa",
				Image:       "https://picsum.photos/400/300?random=2",
				Category:    CategoryProperties,
				Description: "2 Bedroom furnished apartment with city view. Generator and elevator available.",
				Seller:      Seller{Name: "Addis Homes", Verified: true, Phone: "0922334455", Rating: 4.5},
				PostedAt:    "5 hrs ago",
				Features:    []string{"2 Bed", "Furnished", "120 sqm"},
			},
			{
				ID:          "3",
				Title:       "MacBook Pro M1 2020",
				Price:       "85,000",
				Currency:    "ETB",
				Location:    "Piassa, Addis Ababa",
				Image:       "https://picsum.photos/400/300?random=3",
				Category:    CategoryItems,
				Description: "Slightly used, battery cycle 50. Comes with original charger.",
				Seller:      Seller{Name: "Tech Hub", Verified: false, Phone: "0933445566", Rating: 4.2},
				PostedAt:    "1 day ago",
			},
		},
		Jobs: []JobListing{
			{
				ID:          "j1",
				Title:       "Senior Flutter Developer",
				Company:     "EthioTelecom",
				Location:    "Addis Ababa",
				Salary:      "Negotiable",
				Type:        JobFullTime,
				Description: "Looking for an experienced mobile app developer.",
				PostedAt:    "1 day ago",
			},
			{
				ID:          "j2",
				Title:       "Marketing Manager",
				Company:     "Zemen Bank",
				Location:    "Addis Ababa",
				Salary:      "25,000 ETB",
				Type:        JobFullTime,
				Description: "Lead our digital marketing campaigns.",
				PostedAt:    "3 days ago",
			},
		},
		Chats: []ChatPreview{
			{
				ID:          "c1",
				Name:        "Dawit Mekonnen",
				Avatar:      "https://picsum.photos/100/100?random=10",
				LastMessage: "Is the price negotiable?",
				Unread:      2,
				Timestamp:   "10:30 AM",
			},
			{
				ID:          "c2",
				Name:        "Saron Alemu",
				Avatar:      "https://picsum.photos/100/100?random=11",
				LastMessage: "Location please?",
				Unread:      0,
				Timestamp:   "Yesterday",
			},
		},
	}
}
