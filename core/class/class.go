package class

import "go.mongodb.org/mongo-driver/bson/primitive"

type Status string

const (
	Pending  Status = "pending"
	Approved Status = "approved"
	Rejected Status = "rejected"
)

// Class lists the fields the server acts on. Feedback is only present while
// the class is rejected.
type Class struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name             string             `json:"class_name" bson:"class_name"`
	Image            string             `json:"class_image,omitempty" bson:"class_image,omitempty"`
	InstructorName   string             `json:"instructor_name" bson:"instructor_name"`
	InstructorEmail  string             `json:"instructor_email" bson:"instructor_email"`
	Price            float64            `json:"price" bson:"price"`
	Status           Status             `json:"status" bson:"status"`
	Feedback         string             `json:"feedback,omitempty" bson:"feedback,omitempty"`
	AvailableSeats   int                `json:"available_seats" bson:"available_seats"`
	EnrolledStudents int                `json:"enrolled_students" bson:"enrolled_students"`
}

// StatusUp moves a class through the approval workflow. Feedback is only
// stored for rejections.
type StatusUp struct {
	Status   Status `json:"status" validate:"required,oneof=approved rejected"`
	Feedback string `json:"rejectionFeedback"`
}
