package cart

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ClassType string

const (
	Selected ClassType = "selected"
	Enrolled ClassType = "enrolled"
)

// Cart holds copies of class documents. Entries keep the class _id as a hex
// string, which is what removals match on.
type Cart struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	StudentEmail    string             `json:"student_email" bson:"student_email"`
	SelectedClasses []Item             `json:"selected_classes" bson:"selected_classes"`
	EnrolledClasses []Item             `json:"enrolled_classes" bson:"enrolled_classes"`
}

type Item struct {
	ID              string `json:"_id" bson:"_id"`
	Name            string `json:"class_name" bson:"class_name"`
	InstructorEmail string `json:"instructor_email" bson:"instructor_email"`
}

// ClassesUp carries the full list of classes the client wants stored.
type ClassesUp struct {
	Classes []bson.M `json:"classes"`
}

type UpdateQuery struct {
	ClassType ClassType `json:"class_type" validate:"required,oneof=selected enrolled"`
	ID        string    `json:"id" validate:"required_if=ClassType enrolled"`
}

type DeleteQuery struct {
	Email string `json:"email" validate:"required"`
	ID    string `json:"id" validate:"required"`
}
