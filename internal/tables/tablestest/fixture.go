// Package tablestest provides a small, fixed set of reference tables for tests.
package tablestest

import "github.com/seanankenbruck/ti-bot/internal/tables"

// Rooms returns the fixture room rows. The counts the room tests rely on:
// 3 WC rooms, 1 prayer room, 2 IT/Computer Engineering labs, 2 nursing labs,
// 1 dentistry lab, 0 pharmacy labs and 5 labs overall.
func Rooms() []tables.Room {
	return []tables.Room{
		{Number: "G-16", Floor: "ground", Purpose: "Registration Office", Person: "Ms. Eman Nasih", Department: "Administration", Description: "She handles student registration.", Photo: "eman.jpg"},
		{Number: "G-17", Floor: "ground", Purpose: "Accounting Office", Person: "Mr. Muhammed Jamal", Department: "Administration", Description: "He handles tuition payments.", Photo: "nan"},
		{Number: "G-20", Floor: "ground", Purpose: "WC", Description: "Ground floor restroom."},
		{Number: "1-20", Floor: "first", Purpose: "WC"},
		{Number: "2-20", Floor: "second", Purpose: "WC"},
		{Number: "G-05", Floor: "ground", Purpose: "Prayer Room"},
		{Number: "1-05", Floor: "first", Purpose: "Computer Lab", Department: "Computer Engineering"},
		{Number: "1-06", Floor: "first", Purpose: "Networking Lab", Department: "Information Technology"},
		{Number: "2-10", Floor: "second", Purpose: "Nursing Lab", Department: "Nursing"},
		{Number: "2-11", Floor: "second", Purpose: "Anatomy Lab", Department: "Nursing"},
		{Number: "3-01", Floor: "third", Purpose: "Dental Lab", Department: "Dentistry"},
		{Number: "1-30", Floor: "first", Purpose: "Lecturer Office", Person: "Mr. Rozh Jaza Rasheed", Department: "Computer Engineering", Description: "He teaches programming.", Photo: "rozh.jpg"},
		{Number: "3-15", Floor: "third", Purpose: "Head of Department Office", Person: "Ms. Shilan Omer", Department: "Pharmacy", Description: "She leads the pharmacy department.", Photo: "None"},
	}
}

// Departments returns the fixture department rows
func Departments() []tables.Department {
	return []tables.Department{
		{Name: "Computer Engineering", Description: "Designs hardware and software systems.", Career: "software engineer or network engineer"},
		{Name: "Information Technology", Description: "Covers networks and databases.", Career: "system administrator"},
		{Name: "Medical Laboratory Science", Description: "Studies clinical lab testing.", Career: "lab technologist"},
		{Name: "Pharmacy", Description: "Studies medicines.", Career: "pharmacist"},
		{Name: "Architecture Engineering", Description: "Designs buildings.", Career: "architect"},
		{Name: "Dentistry", Description: "Studies oral health.", Career: "dentist"},
	}
}

// General returns the fixture general Q&A rows, including one blank row
func General() []tables.GeneralQA {
	return []tables.GeneralQA{
		{Intent: "library hours", Example: "when does the library open", Response: "The library opens at 8:30 AM."},
		{Intent: "wifi", Example: "how can i connect to the wifi", Response: "Use your student account to connect to TIU-WiFi."},
		{Response: "This row has no intent or example and is never chosen."},
		{Intent: "cafeteria", Example: "where can i eat", Response: "The cafeteria is on the ground floor."},
	}
}

// Tables returns all fixture tables
func Tables() *tables.Tables {
	return tables.New(Rooms(), Departments(), General())
}
