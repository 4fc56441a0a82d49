package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mamadbah2/shipment-tracker/internal/domain/models"
)

// castString accepts any JSON scalar and stores it as a string, the way the
// shipment schema casts its String paths. null becomes "". Objects and arrays
// cannot be cast.
type castString string

func (s *castString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = castString(t)
	case json.Number:
		*s = castString(t.String())
	case bool:
		*s = castString(strconv.FormatBool(t))
	default:
		return fmt.Errorf("cast to string failed for value %s", data)
	}
	return nil
}

type partyBody struct {
	Name    castString `json:"name"`
	Address castString `json:"address"`
}

// submitBody is the loosely typed form of models.SubmitRequest.
type submitBody struct {
	Sender          partyBody  `json:"sender"`
	Receiver        partyBody  `json:"receiver"`
	ShipmentDetails castString `json:"shipmentDetails"`
	TrackerID       castString `json:"trackerId"`
}

func (b submitBody) request() models.SubmitRequest {
	return models.SubmitRequest{
		Sender:          models.Party{Name: string(b.Sender.Name), Address: string(b.Sender.Address)},
		Receiver:        models.Party{Name: string(b.Receiver.Name), Address: string(b.Receiver.Address)},
		ShipmentDetails: string(b.ShipmentDetails),
		TrackerID:       string(b.TrackerID),
	}
}
