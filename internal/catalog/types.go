package catalog

import (
	"fmt"
	"strings"
)

// Category identifies the section a listing belongs to
type Category string

const (
	CategoryItems      Category = "items"
	CategoryCars       Category = "cars"
	CategoryProperties Category = "properties"
	CategoryJobs       Category = "jobs"
	CategoryServices   Category = "services"
)

// Categories returns every category in display order
func Categories() []Category {
	return []Category{CategoryItems, CategoryCars, CategoryProperties, CategoryJobs, CategoryServices}
}

// ParseCategory parses a category tag, rejecting anything outside the closed set
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid category: %q (must be one of: items, cars, properties, jobs, services)", s)
	}
	return c, nil
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryItems, CategoryCars, CategoryProperties, CategoryJobs, CategoryServices:
		return true
	default:
		return false
	}
}

// DisplayName returns the label shown in the category strip
func (c Category) DisplayName() string {
	switch c {
	case CategoryItems:
		return "Marketplace"
	case CategoryCars:
		return "Vehicles"
	case CategoryProperties:
		return "Real Estate"
	case CategoryJobs:
		return "Jobs"
	case CategoryServices:
		return "Services"
	default:
		return string(c)
	}
}

// Seller describes who posted a listing
type Seller struct {
	Name     string  `yaml:"name" json:"name"`
	Verified bool    `yaml:"verified" json:"verified"`
	Phone    string  `yaml:"phone" json:"phone"`
	Rating   float64 `yaml:"rating" json:"rating"`
}

// Listing is a single classified ad
type Listing struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Price       string   `yaml:"price" json:"price"`
	Currency    string   `yaml:"currency" json:"currency"`
	Location    string   `yaml:"location" json:"location"`
	Image       string   `yaml:"image" json:"image"`
	Category    Category `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features,omitempty" json:"features,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Seller      Seller   `yaml:"seller" json:"seller"`
	PostedAt    string   `yaml:"posted_at" json:"posted_at"`
}

// PriceLabel renders price and currency the way cards show them
func (l *Listing) PriceLabel() string {
	if l.Currency == "" {
		return l.Price
	}
	return l.Price + " " + l.Currency
}

// JobType is the employment type of a job listing
type JobType string

const (
	JobFullTime JobType = "Full-time"
	JobPartTime JobType = "Part-time"
	JobContract JobType = "Contract"
)

// JobListing is an entry in the jobs board
type JobListing struct {
	ID          string  `yaml:"id" json:"id"`
	Title       string  `yaml:"title" json:"title"`
	Company     string  `yaml:"company" json:"company"`
	Location    string  `yaml:"location" json:"location"`
	Salary      string  `yaml:"salary" json:"salary"`
	Type        JobType `yaml:"type" json:"type"`
	Description string  `yaml:"description" json:"description"`
	PostedAt    string  `yaml:"posted_at" json:"posted_at"`
}

// ChatPreview is one row of the messages list
type ChatPreview struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Avatar      string `yaml:"avatar" json:"avatar"`
	LastMessage string `yaml:"last_message" json:"last_message"`
	Unread      int    `yaml:"unread" json:"unread"`
	Timestamp   string `yaml:"timestamp" json:"timestamp"`
}
