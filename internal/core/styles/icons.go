package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconPencil    = "" // nf-fa-pencil
	IconChecked   = "[x]"
	IconUnchecked = "[ ]"
	IconCursor    = ">"

	IconNotifyInfo    = "" // nf-fa-info_circle
	IconNotifyWarning = "" // nf-fa-warning
	IconNotifyError   = "" // nf-fa-times_circle
)

// PasswordMask is shown in place of a committed password.
const PasswordMask = "••••••••"
