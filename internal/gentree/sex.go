package gentree

import "strings"

// Given-name lists used as a fallback when the prose carries no pronoun.
// These came from the reports this tool was written against; they are a
// heuristic, not a census.
var femaleGiven = map[string]bool{}
var maleGiven = map[string]bool{}

func init() {
	for _, n := range []string{
		"Adele", "Alice", "Amelia", "Andrea", "Ann", "Annie", "Antoinette",
		"Aurora", "Barbara", "Bernice", "Carol", "Catherine", "Cecilia",
		"Cynthia", "Daphne", "Denise", "Donna", "Elizabeth", "Emily", "Esme",
		"Esther", "Eugenia", "Eva", "Evelyn", "Farrah", "Gail", "Geneva",
		"Genevieve", "Genie", "Hazel", "Helen", "Hindth", "Irene", "Isabelle",
		"Jamalie", "Jane", "Janet", "Jean", "Joan", "Josephine", "Joyce",
		"Julia", "Julie", "Juliet", "Juliette", "Karen", "Katherine", "Kyla",
		"Lillian", "Linda", "Loretta", "Lorraine", "Louise", "Lulu", "Lynn",
		"Madeline", "Mamie", "Margaret", "Marguerite", "Maria", "Mariam",
		"Marie", "Marina", "Marion", "Martha", "Mary", "Matilda", "Mercedes",
		"Meriana", "Minera", "Morena", "Nancy", "Odette", "Patricia", "Paula",
		"Paulette", "Rebecca", "Regina", "Rita", "Roberta", "Rochelle",
		"Rosa", "Rose", "Sadie", "Sandra", "Sarah", "Sarrauff", "Serena",
		"Sevilla", "Shaheedy", "Shela", "Shirley", "Sister", "Suraya",
		"Susan", "Suzette", "Sylvia", "Theresa", "Thresa", "Veronica",
		"Victoria", "Virginia", "Yamile", "Yvonne",
	} {
		femaleGiven[n] = true
	}
	for _, n := range []string{
		"Abdullah", "Abraham", "Adrian", "Albert", "Allan", "Alsyus",
		"Anthony", "Antonio", "Badaoui", "Boutrous", "Brent", "Brian",
		"Cameron", "Charles", "Chester", "Christopher", "Daniel", "Dave",
		"David", "Derek", "Edward", "Elias", "Eugene", "Felix", "Francis",
		"Frank", "Fred", "Frederick", "Gabriel", "Garth", "Gary", "George",
		"Gerald", "Gordon", "Haid", "Harold", "James", "Jerges", "Jerry",
		"John", "Jorge", "Joseph", "Kevin", "Khalil", "Louis", "Marshall",
		"Maurice", "Michael", "Nahman", "Paul", "Peter", "Philip", "Pierre",
		"Rafoul", "Randolph", "Raymond", "Rev.", "Richard", "Rob", "Robert",
		"Roger", "Ronald", "Ronnie", "Roy", "Salim", "Salomon", "Simon",
		"Stephan", "Tannous", "Thomas", "Tony", "Vincent", "Wadih",
		"William", "Youssef",
	} {
		maleGiven[n] = true
	}
}

// InferSex guesses a person's sex from marriage pronouns in their notes,
// falling back to the given-name lists. Returns "" when neither applies.
func InferSex(name, notes string) string {
	if strings.Contains(notes, "He married") {
		return "M"
	}
	if strings.Contains(notes, "She married") {
		return "F"
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	switch {
	case maleGiven[fields[0]]:
		return "M"
	case femaleGiven[fields[0]]:
		return "F"
	}
	return ""
}
