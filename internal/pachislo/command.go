package pachislo

import (
	"errors"
	"fmt"
)

var ErrUnknownCommand = errors.New("unknown command token")

// Command is the closed player-command vocabulary.
type Command int

const (
	CmdLaunchBall Command = iota
	CmdCauseLottery
	CmdStartGame
	CmdFinishGame
	CmdFinish
)

func (c Command) String() string {
	switch c {
	case CmdLaunchBall:
		return "LaunchBall"
	case CmdCauseLottery:
		return "CauseLottery"
	case CmdStartGame:
		return "StartGame"
	case CmdFinishGame:
		return "FinishGame"
	case CmdFinish:
		return "Finish"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// ParseCommand converts an external token into a Command. Tokens are
// case-sensitive; anything unrecognized is a recoverable parse error and
// never touches engine state.
func ParseCommand(token string) (Command, error) {
	switch token {
	case "LaunchBall":
		return CmdLaunchBall, nil
	case "CauseLottery":
		return CmdCauseLottery, nil
	case "StartGame":
		return CmdStartGame, nil
	case "FinishGame":
		return CmdFinishGame, nil
	case "Finish":
		return CmdFinish, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, token)
	}
}
