package model

import (
	"fmt"

	"github.com/deppfellow/netcafe/internal/database"
)

// ComputerStatus is the state of a seat.
type ComputerStatus int16

const (
	StatusAvailable   ComputerStatus = 0
	StatusInUse       ComputerStatus = 1
	StatusMaintenance ComputerStatus = 2
)

func (s ComputerStatus) String() string {
	switch s {
	case StatusAvailable:
		return "available"
	case StatusInUse:
		return "in_use"
	case StatusMaintenance:
		return "maintenance"
	default:
		return fmt.Sprintf("status(%d)", int16(s))
	}
}

// Valid reports whether s is a known status.
func (s ComputerStatus) Valid() bool {
	return s >= StatusAvailable && s <= StatusMaintenance
}

// Computer is a rentable seat.
type Computer struct {
	ID     int16          `json:"id"`
	Name   string         `json:"name"`
	Status ComputerStatus `json:"status"`
}

// ComputerFromRow reads the computerid, computername and computerstatus columns.
func ComputerFromRow(row database.Row) (Computer, error) {
	id, err := row.Int16("ComputerID")
	if err != nil {
		return Computer{}, err
	}

	name, err := row.String("ComputerName")
	if err != nil {
		return Computer{}, err
	}

	status, err := row.Int16("ComputerStatus")
	if err != nil {
		return Computer{}, err
	}

	return Computer{ID: id, Name: name, Status: ComputerStatus(status)}, nil
}
