package validatex

import "go.mongodb.org/mongo-driver/bson/primitive"

// DataType declares how a parameter's raw value must be interpreted.
type DataType string

const (
	DataTypeString   DataType = "STRING"
	DataTypeInteger  DataType = "INTEGER"
	DataTypeFloat    DataType = "FLOAT"
	DataTypeObjectID DataType = "OBJECT_ID"
	DataTypeDate     DataType = "DATE"
)

// Known reports whether the data type is one the engine can coerce.
func (d DataType) Known() bool {
	switch d {
	case DataTypeString, DataTypeInteger, DataTypeFloat, DataTypeObjectID, DataTypeDate:
		return true
	}
	return false
}

// ConstraintKind selects the secondary check applied after type coercion.
type ConstraintKind string

const (
	ConstraintBetween     ConstraintKind = "BETWEEN"
	ConstraintEquals      ConstraintKind = "EQUALS"
	ConstraintIn          ConstraintKind = "IN"
	ConstraintGreaterThan ConstraintKind = "GREATER_THAN"
	ConstraintLessThan    ConstraintKind = "LESS_THAN"
)

// Known reports whether the constraint kind is one the engine can evaluate.
func (k ConstraintKind) Known() bool {
	switch k {
	case ConstraintBetween, ConstraintEquals, ConstraintIn, ConstraintGreaterThan, ConstraintLessThan:
		return true
	}
	return false
}

// Constraint is a secondary check on a coerced value. The Value payload is
// kind-specific: a {min,max} document for BETWEEN, a collection for IN and a
// scalar for the rest.
type Constraint struct {
	Kind  ConstraintKind `bson:"actionType" json:"actionType"`
	Value any            `bson:"value" json:"value"`
}

// ParamRule defines how a single named parameter is validated.
//
// Regex is only meaningful for STRING parameters and must match the whole
// value. Format is only meaningful for DATE parameters and is a Go reference
// layout (e.g. "2006-01-02").
type ParamRule struct {
	Name       string      `bson:"name" json:"name"`
	DataType   DataType    `bson:"dataType" json:"dataType"`
	Regex      string      `bson:"regex,omitempty" json:"regex,omitempty"`
	Format     string      `bson:"format,omitempty" json:"format,omitempty"`
	IsRequired bool        `bson:"isRequired,omitempty" json:"isRequired,omitempty"`
	Constraint *Constraint `bson:"action,omitempty" json:"action,omitempty"`
}

// RouteRule is the configuration document defining validation requirements
// for one route and method pair. Rules are read fresh per request; the store
// is assumed to hold at most one active rule per (routeName, method).
type RouteRule struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RouteName   string             `bson:"routeName" json:"routeName"`
	Method      string             `bson:"method" json:"method"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	URLParams   []ParamRule        `bson:"urlParams,omitempty" json:"urlParams,omitempty"`
	QueryParams []ParamRule        `bson:"queryParams,omitempty" json:"queryParams,omitempty"`
	BodySchema  map[string]any     `bson:"requestBodySchema,omitempty" json:"requestBodySchema,omitempty"`
}
