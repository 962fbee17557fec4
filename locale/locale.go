// Package locale holds the user-facing strings for every supported language.
package locale

import "fmt"

// ID names a language.
type ID string

const (
	English ID = "en"
	Russian ID = "ru"
)

// IDs lists every language in menu order.
var IDs = []ID{English, Russian}

// Parse validates a language code.
func Parse(code string) (ID, error) {
	for _, id := range IDs {
		if string(id) == code {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown locale %q", code)
}

// T translates key, falling back to English and then to the key itself.
func T(id ID, key string) string {
	if s, ok := catalog[id][key]; ok {
		return s
	}
	if s, ok := catalog[English][key]; ok {
		return s
	}
	return key
}

// Tf translates key and formats it with args.
func Tf(id ID, key string, args ...any) string {
	return fmt.Sprintf(T(id, key), args...)
}

var catalog = map[ID]map[string]string{
	English: {
		"menu.title":             "BLOCKFALL",
		"menu.start":             "Start",
		"menu.theme":             "Theme",
		"menu.language":          "Language",
		"menu.achievements":      "Achievements",
		"menu.achievementsDesc":  "%d of %d unlocked",
		"menu.data":              "Data",
		"menu.resetRecords":      "Reset records",
		"menu.resetAchievements": "Reset achievements",
		"menu.resetConfirm":      "Are you sure?",

		"game.score":     "Score",
		"game.level":     "Level",
		"game.lines":     "Lines",
		"game.next":      "Next",
		"game.highScore": "Best",
		"game.pause":     "Pause",
		"game.paused":    "PAUSED",
		"game.resume":    "Resume",
		"game.restart":   "Restart",
		"game.start":     "Start",
		"game.soundOn":   "Sound on",
		"game.soundOff":  "Sound off",

		"gameover.title":     "GAME OVER",
		"gameover.score":     "Score: %d",
		"gameover.highScore": "New best!",
		"gameover.restart":   "Press R to restart",
		"gameover.menu":      "Menu",

		"achievement.unlocked": "Achievement unlocked",

		"achievement.first_clear.name":        "First Clear",
		"achievement.first_clear.desc":        "Clear your first line",
		"achievement.double.name":             "Double",
		"achievement.double.desc":             "Clear two lines at once",
		"achievement.triple.name":             "Triple",
		"achievement.triple.desc":             "Clear three lines at once",
		"achievement.tetris.name":             "Four in a Row",
		"achievement.tetris.desc":             "Clear four lines at once",
		"achievement.score_1k.name":           "Thousandaire",
		"achievement.score_1k.desc":           "Reach 1,000 points",
		"achievement.score_5k.name":           "High Roller",
		"achievement.score_5k.desc":           "Reach 5,000 points",
		"achievement.score_10k.name":          "Legend",
		"achievement.score_10k.desc":          "Reach 10,000 points",
		"achievement.lines_25.name":           "Line Worker",
		"achievement.lines_25.desc":           "Clear 25 lines in one game",
		"achievement.lines_50.name":           "Line Foreman",
		"achievement.lines_50.desc":           "Clear 50 lines in one game",
		"achievement.lines_100.name":          "Line Master",
		"achievement.lines_100.desc":          "Clear 100 lines in one game",
		"achievement.level_5.name":            "Speeding Up",
		"achievement.level_5.desc":            "Reach level 5",
		"achievement.level_10.name":           "Top Speed",
		"achievement.level_10.desc":           "Reach level 10",
		"achievement.player_of_the_year.name": "Player of the Year",
		"achievement.player_of_the_year.desc": "Lose without scoring a point",
		"achievement.speedrun.name":           "Speedrun",
		"achievement.speedrun.desc":           "Lose without clearing a line",
	},
	Russian: {
		"menu.title":             "BLOCKFALL",
		"menu.start":             "Начать",
		"menu.theme":             "Тема",
		"menu.language":          "Язык",
		"menu.achievements":      "Достижения",
		"menu.achievementsDesc":  "Открыто %d из %d",
		"menu.data":              "Данные",
		"menu.resetRecords":      "Сбросить рекорды",
		"menu.resetAchievements": "Сбросить достижения",
		"menu.resetConfirm":      "Вы уверены?",

		"game.score":     "Очки",
		"game.level":     "Уровень",
		"game.lines":     "Линии",
		"game.next":      "Далее",
		"game.highScore": "Рекорд",
		"game.pause":     "Пауза",
		"game.paused":    "ПАУЗА",
		"game.resume":    "Продолжить",
		"game.restart":   "Заново",
		"game.start":     "Старт",
		"game.soundOn":   "Звук вкл",
		"game.soundOff":  "Звук выкл",

		"gameover.title":     "ИГРА ОКОНЧЕНА",
		"gameover.score":     "Очки: %d",
		"gameover.highScore": "Новый рекорд!",
		"gameover.restart":   "Нажмите R, чтобы начать заново",
		"gameover.menu":      "Меню",

		"achievement.unlocked": "Достижение открыто",

		"achievement.first_clear.name":        "Первая линия",
		"achievement.first_clear.desc":        "Уберите первую линию",
		"achievement.double.name":             "Дубль",
		"achievement.double.desc":             "Уберите две линии сразу",
		"achievement.triple.name":             "Трипл",
		"achievement.triple.desc":             "Уберите три линии сразу",
		"achievement.tetris.name":             "Четыре в ряд",
		"achievement.tetris.desc":             "Уберите четыре линии сразу",
		"achievement.score_1k.name":           "Тысячник",
		"achievement.score_1k.desc":           "Наберите 1000 очков",
		"achievement.score_5k.name":           "Игрок по-крупному",
		"achievement.score_5k.desc":           "Наберите 5000 очков",
		"achievement.score_10k.name":          "Легенда",
		"achievement.score_10k.desc":          "Наберите 10000 очков",
		"achievement.lines_25.name":           "Работник линий",
		"achievement.lines_25.desc":           "Уберите 25 линий за игру",
		"achievement.lines_50.name":           "Бригадир линий",
		"achievement.lines_50.desc":           "Уберите 50 линий за игру",
		"achievement.lines_100.name":          "Мастер линий",
		"achievement.lines_100.desc":          "Уберите 100 линий за игру",
		"achievement.level_5.name":            "Разгон",
		"achievement.level_5.desc":            "Достигните 5 уровня",
		"achievement.level_10.name":           "Максимальная скорость",
		"achievement.level_10.desc":           "Достигните 10 уровня",
		"achievement.player_of_the_year.name": "Игрок года",
		"achievement.player_of_the_year.desc": "Проиграйте, не набрав ни одного очка",
		"achievement.speedrun.name":           "Спидран",
		"achievement.speedrun.desc":           "Проиграйте, не убрав ни одной линии",
	},
}
