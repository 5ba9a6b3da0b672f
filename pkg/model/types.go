package model

// Widget names the control used to collect a field.
type Widget string

const (
	WidgetInput    Widget = "input"
	WidgetTextArea Widget = "textarea"
)

// FieldSpec describes how a single field is presented. It is derived from the
// contact operation schema and carries no validation logic of its own; the
// length and format hints are mirrored onto HTML attributes and prompt help.
type FieldSpec struct {
	Field       Field             `json:"field"`
	Label       string            `json:"label"`
	InputType   string            `json:"inputType"`
	Widget      Widget            `json:"widget"`
	Required    bool              `json:"required"`
	Format      string            `json:"format,omitempty"`
	MinLength   int               `json:"minLength,omitempty"`
	Rows        int               `json:"rows,omitempty"`
	Placeholder string            `json:"placeholder,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// FormModel is the presentation model renderers consume.
type FormModel struct {
	OperationID string            `json:"operationId"`
	Endpoint    string            `json:"endpoint"`
	Method      string            `json:"method"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	SubmitLabel string            `json:"submitLabel,omitempty"`
	SendingText string            `json:"sendingLabel,omitempty"`
	Fields      []FieldSpec       `json:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Spec returns the presentation spec for field.
func (m FormModel) Spec(field Field) (FieldSpec, bool) {
	for _, spec := range m.Fields {
		if spec.Field == field {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// ContactDetails lists the direct contact channels shown next to the form.
type ContactDetails struct {
	Email     string            `json:"email" yaml:"email"`
	Phone     string            `json:"phone,omitempty" yaml:"phone"`
	PhoneHref string            `json:"phoneHref,omitempty" yaml:"phone_href"`
	Location  string            `json:"location,omitempty" yaml:"location"`
	MapURL    string            `json:"mapUrl,omitempty" yaml:"map_url"`
	Icons     map[string]string `json:"icons,omitempty" yaml:"icons"`
}
