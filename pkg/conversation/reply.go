package conversation

// Reply is one outbound message with optional keyboard instructions.
// It is transport-agnostic: the Telegram adapter translates it to the wire
// representation.
type Reply struct {
	Text           string
	Keyboard       [][]string     // reply-keyboard rows; nil leaves the keyboard as is
	InlineButtons  []InlineButton // inline keyboard, one button per row
	RemoveKeyboard bool
}

// InlineButton is a selectable button carrying opaque callback data.
type InlineButton struct {
	Label string
	Data  string
}

func textReply(text string) Reply {
	return Reply{Text: text}
}

func keyboardReply(text string, options []string, perRow int) Reply {
	return Reply{Text: text, Keyboard: keyboardRows(options, perRow)}
}

func removeKeyboardReply(text string) Reply {
	return Reply{Text: text, RemoveKeyboard: true}
}

// keyboardRows lays options out perRow buttons per row, in order.
func keyboardRows(options []string, perRow int) [][]string {
	if perRow < 1 {
		perRow = 1
	}
	var rows [][]string
	for i := 0; i < len(options); i += perRow {
		end := i + perRow
		if end > len(options) {
			end = len(options)
		}
		rows = append(rows, options[i:end])
	}
	return rows
}
