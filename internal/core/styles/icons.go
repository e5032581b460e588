package styles

var (
	IconDirty   = "●"
	IconComment = "#"
	IconFortune = "吉"
	IconSearch  = "/"
	IconWarning = "!"
	IconCheck   = "✓"
	IconCross   = "✗"
	IconInfo    = "i"
)
