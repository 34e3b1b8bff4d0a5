package events

const (
	TypeNewBoard = "newBoard"
	TypeNewPath  = "newPath"
)

// Event is one immutable entry of the notification log. Data holds the
// denormalized display payload serialized to SSE/websocket clients as-is.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func (Event) GetEventTopicName() string {
	return "trailmark.notifications"
}

type NewBoardPayload struct {
	BoardId         uint64 `json:"board_id"`
	BoardName       string `json:"board_name"`
	CreatorUsername string `json:"creator_username"`
}

type NewPathPayload struct {
	PathId       uint64 `json:"path_id"`
	BoardId      uint64 `json:"board_id"`
	BoardName    string `json:"board_name"`
	UserUsername string `json:"user_username"`
}

func NewBoardEvent(boardId uint64, boardName, creatorUsername string) Event {
	return Event{
		Type: TypeNewBoard,
		Data: NewBoardPayload{
			BoardId:         boardId,
			BoardName:       boardName,
			CreatorUsername: creatorUsername,
		},
	}
}

func NewPathEvent(pathId, boardId uint64, boardName, userUsername string) Event {
	return Event{
		Type: TypeNewPath,
		Data: NewPathPayload{
			PathId:       pathId,
			BoardId:      boardId,
			BoardName:    boardName,
			UserUsername: userUsername,
		},
	}
}
