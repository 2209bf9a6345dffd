package service

import "github.com/rocketscienceinc/rps-backend/internal/rps"

type BotService interface {
	PickMove() rps.Move
}

type botService struct{}

func NewBotService() BotService {
	return &botService{}
}

// PickMove - draws the bot's move uniformly at random. Every call draws
// independently, so two bots in the same round never coordinate.
func (that *botService) PickMove() rps.Move {
	return rps.RandomMove()
}
