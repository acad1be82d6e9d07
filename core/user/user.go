package user

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role is one of default, instructor or admin.
type Role string

// Counter names a numeric field of a user document that only moves by
// increments.
type Counter string

const (
	TotalClasses    Counter = "total_classes"
	EnrolledCourses Counter = "enrolled_courses"
	TotalStudents   Counter = "total_students"
)

// User lists the fields the server acts on. Documents are stored as posted,
// so they may carry more.
type User struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Photo           string             `json:"photo,omitempty" bson:"photo,omitempty"`
	Phone           string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address         string             `json:"address,omitempty" bson:"address,omitempty"`
	Gender          string             `json:"gender,omitempty" bson:"gender,omitempty"`
	Role            Role               `json:"role" bson:"role"`
	TotalClasses    int                `json:"total_classes" bson:"total_classes"`
	EnrolledCourses int                `json:"enrolled_courses" bson:"enrolled_courses"`
	TotalStudents   int                `json:"total_students" bson:"total_students"`
}

// ProfileUp replaces the three profile fields. Fields absent from the body
// are stored as null.
type ProfileUp struct {
	Phone   *string `json:"phone" bson:"phone"`
	Address *string `json:"address" bson:"address"`
	Gender  *string `json:"gender" bson:"gender"`
}

type RoleUp struct {
	Role Role `json:"role" validate:"required,oneof=default instructor admin"`
}
