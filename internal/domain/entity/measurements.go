package entity

// Feature names in the order the model consumes them
const (
	FieldSepalLength = "sepal_length"
	FieldSepalWidth  = "sepal_width"
	FieldPetalLength = "petal_length"
	FieldPetalWidth  = "petal_width"
)

// FeatureNames lists the required request fields in model input order
var FeatureNames = []string{FieldSepalLength, FieldSepalWidth, FieldPetalLength, FieldPetalWidth}

// Measurements is one iris sample
type Measurements struct {
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
}

// NewMeasurements builds a sample from a vector ordered like FeatureNames
func NewMeasurements(v [4]float64) Measurements {
	return Measurements{
		SepalLength: v[0],
		SepalWidth:  v[1],
		PetalLength: v[2],
		PetalWidth:  v[3],
	}
}

// Vector returns the features ordered like FeatureNames
func (m Measurements) Vector() []float64 {
	return []float64{m.SepalLength, m.SepalWidth, m.PetalLength, m.PetalWidth}
}

// AllPositive returns true if every measurement is strictly positive
func (m Measurements) AllPositive() bool {
	for _, v := range m.Vector() {
		if v <= 0 {
			return false
		}
	}
	return true
}
