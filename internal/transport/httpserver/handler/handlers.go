package handler

import (
	authdomain "club-app-go/internal/domain/auth"
	chatdomain "club-app-go/internal/domain/chat"
	meetingdomain "club-app-go/internal/domain/meeting"
	memberdomain "club-app-go/internal/domain/member"
	"club-app-go/internal/domain/reminder"
	"club-app-go/pkg/logger"
)

type Handlers struct {
	Members  *memberdomain.Service
	Auth     *authdomain.Service
	Meetings *meetingdomain.Service
	Reminder *reminder.Service
	Chat     *chatdomain.Service
	log      logger.Logger
}

func New(members *memberdomain.Service, auth *authdomain.Service, meetings *meetingdomain.Service, rem *reminder.Service, chat *chatdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Members:  members,
		Auth:     auth,
		Meetings: meetings,
		Reminder: rem,
		Chat:     chat,
		log:      log,
	}
}
