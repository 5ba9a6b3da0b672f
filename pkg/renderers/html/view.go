package html

import (
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-contactform/pkg/model"
	"github.com/goliatone/go-contactform/pkg/motion"
	"github.com/goliatone/go-contactform/pkg/render"
	contacttheme "github.com/goliatone/go-contactform/pkg/theme"
)

const (
	detailEmail   = "email"
	detailPhone   = "phone"
	detailAddress = "address"

	defaultSubmitLabel  = "Send Message"
	defaultSendingLabel = "Sending..."
)

type formView struct {
	OperationID string `json:"operation_id"`
	Title       string `json:"title"`
	Intro       string `json:"intro"`
	Method      string `json:"method"`
	Action      string `json:"action"`
}

type fieldView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Widget      string `json:"widget"`
	Type        string `json:"type"`
	Value       string `json:"value"`
	Rows        string `json:"rows"`
	MinLength   string `json:"min_length"`
	Placeholder string `json:"placeholder"`
	Required    bool   `json:"required"`
	Invalid     bool   `json:"invalid"`
	Error       string `json:"error"`
	ErrorID     string `json:"error_id"`
}

type statusView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type detailView struct {
	Kind     string `json:"kind"`
	Text     string `json:"text"`
	Href     string `json:"href"`
	Copy     string `json:"copy"`
	External bool   `json:"external"`
	Icon     string `json:"icon"`
	Motion   string `json:"motion"`
}

type themeView struct {
	Name       string            `json:"name"`
	Variant    string            `json:"variant"`
	CSSVars    map[string]string `json:"css_vars"`
	Stylesheet string            `json:"stylesheet"`
}

type motionView struct {
	Section string `json:"section"`
	Banner  string `json:"banner"`
	Submit  string `json:"submit"`
}

type hiddenView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type pageView struct {
	Form        formView     `json:"form"`
	Hidden      []hiddenView `json:"hidden"`
	Sending     bool         `json:"sending"`
	SubmitLabel string       `json:"submit_label"`
	Theme       themeView    `json:"theme"`
	Motion      motionView   `json:"motion"`

	FieldsHTML  string `json:"fields_html"`
	StatusHTML  string `json:"status_html"`
	DetailsHTML string `json:"details_html"`
}

func buildForm(form model.FormModel) formView {
	method := strings.ToLower(strings.TrimSpace(form.Method))
	if method != "get" {
		method = "post"
	}
	return formView{
		OperationID: form.OperationID,
		Title:       form.Summary,
		Intro:       form.Description,
		Method:      method,
		Action:      form.Endpoint,
	}
}

func buildFields(form model.FormModel, state model.State) []fieldView {
	fields := make([]fieldView, 0, len(model.Fields()))
	for _, field := range model.Fields() {
		spec, ok := form.Spec(field)
		if !ok {
			spec = model.FieldSpec{Field: field, Label: field.String(), Widget: model.WidgetInput, InputType: "text"}
		}
		view := fieldView{
			ID:          field.String(),
			Name:        field.String(),
			Label:       spec.Label,
			Widget:      string(spec.Widget),
			Type:        spec.InputType,
			Value:       state.Values.Get(field),
			Placeholder: spec.Placeholder,
			Required:    spec.Required,
		}
		if view.Type == "" {
			view.Type = "text"
		}
		if spec.Rows > 0 {
			view.Rows = strconv.Itoa(spec.Rows)
		}
		if spec.MinLength > 0 {
			view.MinLength = strconv.Itoa(spec.MinLength)
		}
		if msg, ok := state.FieldError(field); ok {
			view.Invalid = true
			view.Error = msg
			view.ErrorID = field.String() + "-error"
		}
		fields = append(fields, view)
	}
	return fields
}

func buildStatus(status model.Status) *statusView {
	if !status.Banner() {
		return nil
	}
	return &statusView{
		Kind:    string(status.Kind),
		Message: status.Message,
	}
}

func buildDetails(details model.ContactDetails, set *motion.Set) []detailView {
	var (
		out     []detailView
		presets motion.Set
	)
	if set != nil {
		presets = *set
	}

	if details.Email != "" {
		out = append(out, detailView{
			Kind:   detailEmail,
			Text:   details.Email,
			Copy:   details.Email,
			Icon:   icon(details.Icons, detailEmail),
			Motion: presets.Email.Attr(),
		})
	}
	if details.Phone != "" {
		out = append(out, detailView{
			Kind:   detailPhone,
			Text:   details.Phone,
			Href:   details.PhoneHref,
			Icon:   icon(details.Icons, detailPhone),
			Motion: presets.Phone.Attr(),
		})
	}
	if details.Location != "" {
		out = append(out, detailView{
			Kind:     detailAddress,
			Text:     details.Location,
			Href:     details.MapURL,
			External: details.MapURL != "",
			Icon:     icon(details.Icons, detailAddress),
			Motion:   presets.Address.Attr(),
		})
	}
	return out
}

func icon(custom map[string]string, kind string) string {
	if markup, ok := custom[kind]; ok {
		return render.SanitizeIcon(markup)
	}
	return render.SanitizeIcon(defaultIcons[kind])
}

func buildTheme(cfg *theme.RendererConfig) themeView {
	if cfg == nil {
		return themeView{}
	}
	view := themeView{
		Name:    cfg.Theme,
		Variant: cfg.Variant,
		CSSVars: cfg.CSSVars,
	}
	if cfg.AssetURL != nil {
		view.Stylesheet = cfg.AssetURL(contacttheme.StylesheetAsset)
	}
	return view
}

func buildMotion(set *motion.Set) motionView {
	if set == nil {
		return motionView{}
	}
	return motionView{
		Section: set.Section.Attr(),
		Banner:  set.Banner.Attr(),
		Submit:  set.Submit.Attr(),
	}
}

func buildHidden(fields map[string]string) []hiddenView {
	reserved := make([]string, 0, len(model.Fields()))
	for _, field := range model.Fields() {
		reserved = append(reserved, field.String())
	}
	sorted := render.SortedHiddenFields(fields, reserved...)
	out := make([]hiddenView, 0, len(sorted))
	for _, hidden := range sorted {
		out = append(out, hiddenView{Name: hidden.Name, Value: hidden.Value})
	}
	return out
}

func submitLabel(form model.FormModel, sending bool) string {
	if sending {
		if form.SendingText != "" {
			return form.SendingText
		}
		return defaultSendingLabel
	}
	if form.SubmitLabel != "" {
		return form.SubmitLabel
	}
	return defaultSubmitLabel
}
