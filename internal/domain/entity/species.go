package entity

import "fmt"

// Species is the integer label of an iris class
type Species int

const (
	SpeciesSetosa Species = iota
	SpeciesVersicolor
	SpeciesVirginica
)

// SpeciesNames is the fixed label table, indexed by Species.
// Its order must match the class order of the training data.
var SpeciesNames = []string{"Setosa", "Versicolor", "Virginica"}

// AllSpeciesNames returns a copy of the label table
func AllSpeciesNames() []string {
	return append([]string(nil), SpeciesNames...)
}

// Valid returns true if s indexes the label table
func (s Species) Valid() bool {
	return s >= 0 && int(s) < len(SpeciesNames)
}

// String returns the external name of the species
func (s Species) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Species(%d)", int(s))
	}
	return SpeciesNames[s]
}
