package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Party identifies one end of a shipment.
type Party struct {
	Name    string `bson:"name" json:"name" yaml:"name"`
	Address string `bson:"address" json:"address" yaml:"address"`
}

// ShipmentRecord is a persisted shipment. Records are immutable once stored.
type ShipmentRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Sender          Party              `bson:"sender" json:"sender"`
	Receiver        Party              `bson:"receiver" json:"receiver"`
	ShipmentDetails string             `bson:"shipmentDetails" json:"shipmentDetails"`
	TrackerID       string             `bson:"trackerId" json:"trackerId"`
}

// SubmitRequest is the body accepted by POST /api/submit.
type SubmitRequest struct {
	Sender          Party  `json:"sender" yaml:"sender"`
	Receiver        Party  `json:"receiver" yaml:"receiver"`
	ShipmentDetails string `json:"shipmentDetails" yaml:"shipmentDetails"`
	TrackerID       string `json:"trackerId" yaml:"trackerId"`
}

// Record converts the request into a record without identity.
func (r SubmitRequest) Record() ShipmentRecord {
	return ShipmentRecord{
		Sender:          r.Sender,
		Receiver:        r.Receiver,
		ShipmentDetails: r.ShipmentDetails,
		TrackerID:       r.TrackerID,
	}
}

// MessageResponse is the success payload of write endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is returned with every 5xx from the API.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
