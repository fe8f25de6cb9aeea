package models

import "time"

// MedicalDocument is an uploaded patient document (lab report, referral,
// prescription scan). The stored asset lives in Cloudinary; Summary is filled
// in by the AI analysis service on request.
type MedicalDocument struct {
	ID         string    `bson:"id" json:"id"`
	PatientID  string    `bson:"patient_id" json:"patientId"`
	FileName   string    `bson:"file_name" json:"fileName"`
	PublicID   string    `bson:"public_id" json:"publicId"`
	URL        string    `bson:"url" json:"url"`
	Summary    string    `bson:"summary,omitempty" json:"summary,omitempty"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}
