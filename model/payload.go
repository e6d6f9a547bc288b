package model

import (
	"errors"
	"fmt"
)

// PayloadType identifies what a payload's values describe.
type PayloadType string

// Event payload types of OpenADR 3.
const (
	PayloadSimple                     PayloadType = "SIMPLE"
	PayloadPrice                      PayloadType = "PRICE"
	PayloadChargeStateSetpoint        PayloadType = "CHARGE_STATE_SETPOINT"
	PayloadDispatchSetpoint           PayloadType = "DISPATCH_SETPOINT"
	PayloadDispatchSetpointRelative   PayloadType = "DISPATCH_SETPOINT_RELATIVE"
	PayloadControlSetpoint            PayloadType = "CONTROL_SETPOINT"
	PayloadExportPrice                PayloadType = "EXPORT_PRICE"
	PayloadGHG                        PayloadType = "GHG"
	PayloadCurve                      PayloadType = "CURVE"
	PayloadOLS                        PayloadType = "OLS"
	PayloadImportCapacitySubscription PayloadType = "IMPORT_CAPACITY_SUBSCRIPTION"
	PayloadImportCapacityReservation  PayloadType = "IMPORT_CAPACITY_RESERVATION"
	PayloadImportCapacityResFee       PayloadType = "IMPORT_CAPACITY_RESERVATION_FEE"
	PayloadImportCapacityAvailable    PayloadType = "IMPORT_CAPACITY_AVAILABLE"
	PayloadImportCapacityAvailPrice   PayloadType = "IMPORT_CAPACITY_AVAILABLE_PRICE"
	PayloadExportCapacitySubscription PayloadType = "EXPORT_CAPACITY_SUBSCRIPTION"
	PayloadExportCapacityReservation  PayloadType = "EXPORT_CAPACITY_RESERVATION"
	PayloadExportCapacityResFee       PayloadType = "EXPORT_CAPACITY_RESERVATION_FEE"
	PayloadExportCapacityAvailable    PayloadType = "EXPORT_CAPACITY_AVAILABLE"
	PayloadExportCapacityAvailPrice   PayloadType = "EXPORT_CAPACITY_AVAILABLE_PRICE"
	PayloadImportCapacityLimit        PayloadType = "IMPORT_CAPACITY_LIMIT"
	PayloadExportCapacityLimit        PayloadType = "EXPORT_CAPACITY_LIMIT"
	PayloadAlertGridEmergency         PayloadType = "ALERT_GRID_EMERGENCY"
	PayloadAlertBlackStart            PayloadType = "ALERT_BLACK_START"
	PayloadAlertPossibleOutage        PayloadType = "ALERT_POSSIBLE_OUTAGE"
	PayloadAlertFlexAlert             PayloadType = "ALERT_FLEX_ALERT"
	PayloadAlertFire                  PayloadType = "ALERT_FIRE"
	PayloadAlertFreezing              PayloadType = "ALERT_FREEZING"
	PayloadAlertWind                  PayloadType = "ALERT_WIND"
	PayloadAlertTsunami               PayloadType = "ALERT_TSUNAMI"
	PayloadAlertAirQuality            PayloadType = "ALERT_AIR_QUALITY"
	PayloadAlertOther                 PayloadType = "ALERT_OTHER"
	PayloadCTA2045Reboot              PayloadType = "CTA2045_REBOOT"
	PayloadCTA2045SetOverrideStatus   PayloadType = "CTA2045_SET_OVERRIDE_STATUS"
)

// Report payload types of OpenADR 3.
const (
	ReportReading               PayloadType = "READING"
	ReportUsage                 PayloadType = "USAGE"
	ReportDemand                PayloadType = "DEMAND"
	ReportSetpoint              PayloadType = "SETPOINT"
	ReportDeltaUsage            PayloadType = "DELTA_USAGE"
	ReportBaseline              PayloadType = "BASELINE"
	ReportOperatingState        PayloadType = "OPERATING_STATE"
	ReportUpRegulationAvail     PayloadType = "UP_REGULATION_AVAILABLE"
	ReportDownRegulationAvail   PayloadType = "DOWN_REGULATION_AVAILABLE"
	ReportRegulationSetpoint    PayloadType = "REGULATION_SETPOINT"
	ReportStorageUsableCapacity PayloadType = "STORAGE_USABLE_CAPACITY"
	ReportStorageChargeLevel    PayloadType = "STORAGE_CHARGE_LEVEL"
)

// Payload couples a payload type with one or more values.
type Payload struct {
	Type   PayloadType `json:"type"`
	Values []Value     `json:"values"`
}

// Validate checks the payload.
func (p Payload) Validate() error {
	if p.Type == "" {
		return errors.New("payload requires a type")
	}
	if len(p.Values) == 0 {
		return fmt.Errorf("payload %s must contain at least one value", p.Type)
	}
	return nil
}

// EventPayloadDescriptor describes the payloads that appear in an event
// or report.
type EventPayloadDescriptor struct {
	PayloadType PayloadType `json:"payloadType"`
	Description string      `json:"description,omitempty"`
	Units       string      `json:"units,omitempty"`
	Currency    string      `json:"currency,omitempty"`
}

// Validate checks the descriptor.
func (d EventPayloadDescriptor) Validate() error {
	if d.PayloadType == "" {
		return errors.New("payload descriptor requires a payload type")
	}
	return nil
}
