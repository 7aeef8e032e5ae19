// Package replay 把一份动作日志重新应用到新的对局上，用于排查线上问题。
package replay

import (
	"encoding/json"
	"fmt"
	"go-acquire/dto"
	"go-acquire/entities"
	"go-acquire/game"
	"io"
)

// Rejection 日志中被规则拒绝的一步
type Rejection struct {
	Index int
	Type  game.ActionType
	Err   error
}

type Result struct {
	State    entities.GameState
	Applied  int
	Rejected []Rejection
}

// ReadLog 读取 JSON 数组形式的动作日志
func ReadLog(r io.Reader) ([]game.Action, error) {
	var messages []dto.ActionMessage
	if err := json.NewDecoder(r).Decode(&messages); err != nil {
		return nil, fmt.Errorf("解析动作日志失败: %w", err)
	}
	actions := make([]game.Action, 0, len(messages))
	for i, msg := range messages {
		action, err := dto.DecodeAction(msg)
		if err != nil {
			return nil, fmt.Errorf("第 %d 条动作: %w", i, err)
		}
		actions = append(actions, action)
	}
	return actions, nil
}

// Run 从空状态依次应用动作；被拒绝的动作记录下来并跳过
func Run(actions []game.Action) Result {
	res := Result{State: entities.NewGameState()}
	for i, action := range actions {
		next, err := game.Apply(res.State, action)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Index: i, Type: action.Type(), Err: err})
			continue
		}
		res.State = next
		res.Applied++
	}
	return res
}
