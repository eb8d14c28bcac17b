package contract

// Built-in catalog of the host application's extension points. Each entry
// pins the initial data shape and the event names exchanged at that
// location; the lifecycle manager validates payloads against these at the
// mount boundary.

// ItemContext is the record the host is currently displaying
type ItemContext struct {
	ID    string `json:"id" validate:"required"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// SidebarData is the initial payload for sidebar panels
type SidebarData struct {
	Item   ItemContext `json:"item" validate:"required"`
	Locale string      `json:"locale" validate:"required"`
}

// ItemChangedPayload notifies a panel that the displayed record changed
type ItemChangedPayload struct {
	Item ItemContext `json:"item" validate:"required"`
}

// ResizePayload is emitted by a panel to request a new render height
type ResizePayload struct {
	Height int `json:"height" validate:"gt=0"`
}

// NotifyPayload asks the host to surface a notification
type NotifyPayload struct {
	Level   string `json:"level" validate:"oneof=info warning error"`
	Message string `json:"message" validate:"required"`
}

// ToolbarData is the initial payload for toolbar buttons
type ToolbarData struct {
	Locale string `json:"locale" validate:"required"`
	User   string `json:"user"`
}

// ToolbarClickedPayload notifies the extension its toolbar button was pressed
type ToolbarClickedPayload struct {
	Button string `json:"button"`
}

// AdminData is the initial payload for admin settings pages
type AdminData struct {
	Locale string `json:"locale" validate:"required"`
	Admin  bool   `json:"admin"`
}

// SettingsSavedPayload reports that the admin page persisted its settings
type SettingsSavedPayload struct {
	Module   string `json:"module" validate:"required"`
	Category string `json:"category" validate:"required"`
}

// Standard extension point identifiers
const (
	PointItemSidebar   = "panel:item-sidebar"
	PointMainToolbar   = "toolbar:main"
	PointAdminSettings = "admin:settings"
)

func init() {
	MustRegister(Contract{
		Point:       PointItemSidebar,
		Description: "panel rendered beside the item detail view",
		Data:        SidebarData{},
		Inbound: map[string]any{
			"item.changed": ItemChangedPayload{},
		},
		Outbound: map[string]any{
			"panel.resize": ResizePayload{},
			"host.notify":  NotifyPayload{},
		},
	})

	MustRegister(Contract{
		Point:       PointMainToolbar,
		Description: "button group in the main toolbar",
		Data:        ToolbarData{},
		Inbound: map[string]any{
			"toolbar.clicked": ToolbarClickedPayload{},
		},
		Outbound: map[string]any{
			"host.notify": NotifyPayload{},
		},
	})

	MustRegister(Contract{
		Point:       PointAdminSettings,
		Description: "settings page in the admin area",
		Data:        AdminData{},
		Inbound:     map[string]any{},
		Outbound: map[string]any{
			"settings.saved": SettingsSavedPayload{},
			"host.notify":    NotifyPayload{},
		},
	})
}
