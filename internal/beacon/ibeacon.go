package beacon

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/google/uuid"

	"librarybox.klederson.com/internal/config"
)

const (
	appleCompanyID = 0x004C
	ibeaconType    = 0x02
	ibeaconLength  = 0x15
)

// Advertisement is the decoded iBeacon payload.
type Advertisement struct {
	UUID    uuid.UUID
	Major   uint16
	Minor   uint16
	TxPower int8 // calibrated RSSI at 1 m
}

// Key identifies a beacon across advertisements.
func (a Advertisement) Key() string {
	return fmt.Sprintf("%s:%d:%d", a.UUID, a.Major, a.Minor)
}

// ParseIBeacon decodes manufacturer data. Layout after the company ID:
// type(1) length(1) uuid(16) major(2) minor(2) txPower(1).
func ParseIBeacon(companyID uint16, data []byte) (Advertisement, bool) {
	if companyID != appleCompanyID || len(data) < 2+ibeaconLength {
		return Advertisement{}, false
	}
	if data[0] != ibeaconType || data[1] != ibeaconLength {
		return Advertisement{}, false
	}
	id, err := uuid.FromBytes(data[2:18])
	if err != nil {
		return Advertisement{}, false
	}
	return Advertisement{
		UUID:    id,
		Major:   binary.BigEndian.Uint16(data[18:20]),
		Minor:   binary.BigEndian.Uint16(data[20:22]),
		TxPower: int8(data[22]),
	}, true
}

// EncodeIBeacon is the inverse of ParseIBeacon.
func EncodeIBeacon(a Advertisement) []byte {
	buf := make([]byte, 2+ibeaconLength)
	buf[0] = ibeaconType
	buf[1] = ibeaconLength
	copy(buf[2:18], a.UUID[:])
	binary.BigEndian.PutUint16(buf[18:20], a.Major)
	binary.BigEndian.PutUint16(buf[20:22], a.Minor)
	buf[22] = byte(a.TxPower)
	return buf
}

// EstimateAccuracy estimates distance in meters from RSSI using the
// log-distance path loss model d = 10^((txPower - rssi) / (10 * n)).
// A zero txPower uses config.MeasuredPower. Returns -1 when rssi carries
// no signal.
func EstimateAccuracy(rssi, txPower float64) float64 {
	if rssi >= 0 {
		return -1
	}
	if txPower == 0 {
		txPower = config.MeasuredPower
	}
	d := math.Pow(10, (txPower-rssi)/(10*config.PathLossExp))
	if d < 0.1 {
		return 0.1
	}
	return d
}
