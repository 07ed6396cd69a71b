package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateItemCreated corresponds to templates/item_created.html
	TemplateItemCreated Template = "item_created"

	// TemplateItemDeleted corresponds to templates/item_deleted.html
	TemplateItemDeleted Template = "item_deleted"
)

// templateForEvent maps job task types onto templates.
var templateForEvent = map[string]Template{
	"item:created": TemplateItemCreated,
	"item:deleted": TemplateItemDeleted,
}

var subjectVerb = map[Template]string{
	TemplateItemCreated: "created",
	TemplateItemDeleted: "deleted",
}
