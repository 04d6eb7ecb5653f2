package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconNotifyInfo    = "" // nf-fa-info_circle
	IconNotifySuccess = "" // nf-fa-check
	IconNotifyError   = "" // nf-fa-times
	IconToggleOn      = "" // nf-fa-toggle_on
	IconToggleOff     = "" // nf-fa-toggle_off
	IconSync          = "" // nf-fa-refresh
	IconClock         = "" // nf-fa-clock_o
)
