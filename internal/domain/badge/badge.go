package badge

type Badge struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Icon        string `json:"icon" bson:"icon"`
	Description string `json:"description" bson:"description"`
}

// Showcase is a catalog badge annotated for the viewing user.
type Showcase struct {
	Badge
	Earned bool `json:"earned"`
}
