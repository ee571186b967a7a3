package game

import (
	"fmt"
	"strings"
)

// Feedback templates. Game over and level up are appended to the
// correct/wrong message.
const (
	msgCorrect  = "🎉 Correct! Well done!"
	msgWrong    = "❌ Wrong! It was %s."
	msgGameOver = " 💀 Game Over! Restarting..."
	msgLevelUp  = " 🆙 Level Up! Welcome to Level %d!"
)

const (
	heartFull  = "❤️"
	heartEmpty = "🖤"
)

// Hearts renders lives filled hearts followed by maxLives-lives empty ones.
func Hearts(lives, maxLives int) string {
	lives = min(max(lives, 0), maxLives)
	return strings.Repeat(heartFull, lives) + strings.Repeat(heartEmpty, maxLives-lives)
}

// StatusOf formats the banners for st.
func StatusOf(st State, maxLives int) Status {
	return Status{
		Lives:     "Lives: " + Hearts(st.Lives, maxLives),
		Level:     fmt.Sprintf("Level: %d", st.Level),
		HighScore: fmt.Sprintf("High Score: %d", st.HighScore),
	}
}
