package document

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"billbook/internal/domain"
)

// CommandType is the wire name of a store command.
type CommandType string

const (
	CommandSetDocument          CommandType = "SET_DOCUMENT"
	CommandSetMode              CommandType = "SET_MODE"
	CommandUpdateField          CommandType = "UPDATE_FIELD"
	CommandAddItem              CommandType = "ADD_ITEM"
	CommandUpdateItem           CommandType = "UPDATE_ITEM"
	CommandRemoveItem           CommandType = "REMOVE_ITEM"
	CommandAddCharge            CommandType = "ADD_CHARGE"
	CommandUpdateCharge         CommandType = "UPDATE_CHARGE"
	CommandRemoveCharge         CommandType = "REMOVE_CHARGE"
	CommandAddTransportation    CommandType = "ADD_TRANSPORTATION"
	CommandUpdateTransportation CommandType = "UPDATE_TRANSPORTATION"
	CommandRemoveTransportation CommandType = "REMOVE_TRANSPORTATION"
	CommandSetActiveTab         CommandType = "SET_ACTIVE_TAB"
	CommandSetSubmitting        CommandType = "SET_SUBMITTING"
	CommandSetValidationErrors  CommandType = "SET_VALIDATION_ERRORS"
	CommandReset                CommandType = "RESET"
)

// Command is one of the closed set of store commands below.
type Command interface {
	Type() CommandType
	command()
}

type SetDocument struct {
	Document domain.Document `json:"document"`
}

type SetMode struct {
	Mode domain.DocumentMode `json:"mode"`
}

type UpdateField struct {
	Field domain.DocumentField `json:"field"`
	Value any                  `json:"value"`
}

// AddItem appends an empty row, or one seeded from the catalog when CatalogItemID is set.
type AddItem struct {
	CatalogItemID string `json:"catalog_item_id,omitempty"`
}

type UpdateItem struct {
	ItemID uuid.UUID        `json:"item_id"`
	Field  domain.ItemField `json:"field"`
	Value  any              `json:"value"`
}

type RemoveItem struct {
	ItemID uuid.UUID `json:"item_id"`
}

type AddCharge struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// UpdateCharge edits "name" or "amount" of a charge.
type UpdateCharge struct {
	ChargeID uuid.UUID `json:"charge_id"`
	Field    string    `json:"field"`
	Value    any       `json:"value"`
}

type RemoveCharge struct {
	ChargeID uuid.UUID `json:"charge_id"`
}

type AddTransportation struct {
	Transportation domain.Transportation `json:"transportation"`
}

type UpdateTransportation struct {
	TransportationID uuid.UUID `json:"transportation_id"`
	Field            string    `json:"field"`
	Value            any       `json:"value"`
}

type RemoveTransportation struct {
	TransportationID uuid.UUID `json:"transportation_id"`
}

type SetActiveTab struct {
	Tab string `json:"tab"`
}

type SetSubmitting struct {
	Submitting bool `json:"submitting"`
}

type SetValidationErrors struct {
	Errors map[string]string `json:"errors"`
}

type Reset struct{}

func (SetDocument) Type() CommandType          { return CommandSetDocument }
func (SetMode) Type() CommandType              { return CommandSetMode }
func (UpdateField) Type() CommandType          { return CommandUpdateField }
func (AddItem) Type() CommandType              { return CommandAddItem }
func (UpdateItem) Type() CommandType           { return CommandUpdateItem }
func (RemoveItem) Type() CommandType           { return CommandRemoveItem }
func (AddCharge) Type() CommandType            { return CommandAddCharge }
func (UpdateCharge) Type() CommandType         { return CommandUpdateCharge }
func (RemoveCharge) Type() CommandType         { return CommandRemoveCharge }
func (AddTransportation) Type() CommandType    { return CommandAddTransportation }
func (UpdateTransportation) Type() CommandType { return CommandUpdateTransportation }
func (RemoveTransportation) Type() CommandType { return CommandRemoveTransportation }
func (SetActiveTab) Type() CommandType         { return CommandSetActiveTab }
func (SetSubmitting) Type() CommandType        { return CommandSetSubmitting }
func (SetValidationErrors) Type() CommandType  { return CommandSetValidationErrors }
func (Reset) Type() CommandType                { return CommandReset }

func (SetDocument) command()          {}
func (SetMode) command()              {}
func (UpdateField) command()          {}
func (AddItem) command()              {}
func (UpdateItem) command()           {}
func (RemoveItem) command()           {}
func (AddCharge) command()            {}
func (UpdateCharge) command()         {}
func (RemoveCharge) command()         {}
func (AddTransportation) command()    {}
func (UpdateTransportation) command() {}
func (RemoveTransportation) command() {}
func (SetActiveTab) command()         {}
func (SetSubmitting) command()        {}
func (SetValidationErrors) command()  {}
func (Reset) command()                {}

type envelope struct {
	Type    CommandType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// DecodeCommand parses {"type": "...", "payload": {...}} into a typed command.
func DecodeCommand(data []byte) (Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding command envelope: %w", err)
	}

	switch env.Type {
	case CommandSetDocument:
		return decodePayload[SetDocument](env)
	case CommandSetMode:
		return decodePayload[SetMode](env)
	case CommandUpdateField:
		return decodePayload[UpdateField](env)
	case CommandAddItem:
		return decodePayload[AddItem](env)
	case CommandUpdateItem:
		return decodePayload[UpdateItem](env)
	case CommandRemoveItem:
		return decodePayload[RemoveItem](env)
	case CommandAddCharge:
		return decodePayload[AddCharge](env)
	case CommandUpdateCharge:
		return decodePayload[UpdateCharge](env)
	case CommandRemoveCharge:
		return decodePayload[RemoveCharge](env)
	case CommandAddTransportation:
		return decodePayload[AddTransportation](env)
	case CommandUpdateTransportation:
		return decodePayload[UpdateTransportation](env)
	case CommandRemoveTransportation:
		return decodePayload[RemoveTransportation](env)
	case CommandSetActiveTab:
		return decodePayload[SetActiveTab](env)
	case CommandSetSubmitting:
		return decodePayload[SetSubmitting](env)
	case CommandSetValidationErrors:
		return decodePayload[SetValidationErrors](env)
	case CommandReset:
		return Reset{}, nil
	default:
		return nil, fmt.Errorf("command %q: %w", env.Type, domain.ErrUnknownCommand)
	}
}

// DecodeCommands parses a JSON array of command envelopes.
func DecodeCommands(data []byte) ([]Command, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding command list: %w", err)
	}
	cmds := make([]Command, 0, len(raw))
	for i, r := range raw {
		cmd, err := DecodeCommand(r)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func decodePayload[T Command](env envelope) (Command, error) {
	var cmd T
	payload := bytes.TrimSpace(env.Payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return cmd, nil
	}
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", env.Type, err)
	}
	return cmd, nil
}
