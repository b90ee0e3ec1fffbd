package telegram

import (
	"fmt"
	"strings"
	"time"

	"boo-assistant/internal/model"
	"boo-assistant/internal/task"
	"boo-assistant/pkg/nlp"
	pkgTelegram "boo-assistant/pkg/telegram"
)

const (
	systemPrompt = "Ты поддерживающий AI ассистент по имени БУ!"

	msgStart = "БУ! 👻 Я помогу не забыть про дедлайны.\n\n" +
		"Напиши задачу с датой, например: «добавь задачу сдать отчёт завтра в 18:00» — и я предложу её создать.\n\n" +
		"Команды:\n/list — активные задачи\n/done <id> — отметить выполненной"

	msgDoneUsage      = "Используй: /done <id>\nНапример: /done 3"
	msgTaskCompleted  = "✅ Отметил выполненной."
	msgTaskNotFound   = "Не нашёл такую задачу."
	msgNoTasks        = "Пока нет активных задач."
	msgProposalStale  = "Это предложение уже неактуально."
	msgCancelled      = "❌ Ок, отменил."
	msgSomethingWrong = "Что-то пошло не так, попробуй ещё раз."
	msgLLMUnavailable = "Не получилось ответить, попробуй ещё раз позже."
	msgNoDateHint     = "Я понимаю задачи с датой, например: «добавь задачу сдать отчёт завтра в 18:00»."

	dueTimeLayout = "2006-01-02 15:04"
	noDueLabel    = "без срока"
)

// formatProposal renders the confirmation prompt for an extracted candidate.
func formatProposal(out task.ProposeOutput) string {
	header := "🧾 Предложение: создать задачу"
	if out.Kind == nlp.KindDeadline {
		header = "🧾 Предложение: создать дедлайн"
	}
	return fmt.Sprintf("%s\n• Название: %s\n• Срок: %s\n\nПодтвердить?",
		header, out.Title, out.DueAt.Format(dueTimeLayout))
}

// confirmKeyboard builds the two-button inline keyboard for a proposal.
func confirmKeyboard(proposalID string) *pkgTelegram.InlineKeyboardMarkup {
	return &pkgTelegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]pkgTelegram.InlineKeyboardButton{
			{
				{Text: "✅ Подтвердить", CallbackData: "confirm:" + proposalID},
				{Text: "❌ Отменить", CallbackData: "cancel:" + proposalID},
			},
		},
	}
}

// formatConfirmed renders the message replacing a confirmed proposal.
func formatConfirmed(out task.ConfirmOutput, loc *time.Location) string {
	text := fmt.Sprintf("✅ Создал задачу #%d\n• %s\n• ⏰ %s",
		out.Task.ID, out.Task.Title, formatDue(out.Task.DueAt, loc))
	if out.CalendarLink != "" {
		text += "\n📅 " + out.CalendarLink
	}
	return text
}

// formatTaskList renders the /list reply.
func formatTaskList(tasks []model.Task, loc *time.Location) string {
	if len(tasks) == 0 {
		return msgNoTasks
	}
	lines := make([]string, 0, len(tasks)+1)
	lines = append(lines, "📌 Активные задачи:")
	for _, t := range tasks {
		lines = append(lines, fmt.Sprintf("#%d — %s — ⏰ %s", t.ID, t.Title, formatDue(t.DueAt, loc)))
	}
	return strings.Join(lines, "\n")
}

func formatDue(due *time.Time, loc *time.Location) string {
	if due == nil {
		return noDueLabel
	}
	return due.In(loc).Format(dueTimeLayout)
}
