// userctl — консольная утилита создания учётных записей.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"schedulebot/internal/auth"
	"schedulebot/internal/entity"
	"schedulebot/internal/storage"
)

func main() {
	_ = godotenv.Load()
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "data/schedule_bot.db"
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка открытия базы данных:", err)
		os.Exit(1)
	}
	defer db.Close()
	users := storage.NewUserRepository(db)

	in := bufio.NewReader(os.Stdin)
	role := strings.ToLower(prompt(in, "Создать пользователя (admin/teacher/student): "))
	if role != entity.RoleAdmin && role != entity.RoleTeacher && role != entity.RoleStudent {
		fmt.Fprintln(os.Stderr, "Неверная роль пользователя")
		os.Exit(1)
	}

	login := prompt(in, "Логин: ")
	password := prompt(in, "Пароль: ")
	hash, err := auth.HashPassword(password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}

	user := entity.User{
		ID:           uuid.NewString(),
		Login:        login,
		PasswordHash: hash,
		Role:         role,
	}
	switch role {
	case entity.RoleStudent:
		// Для ученика отображаемое имя — название его класса
		user.DisplayName = prompt(in, "Имя пользователя: ")
	case entity.RoleTeacher:
		user.DisplayName = prompt(in, "Имя пользователя: ")
		user.IsJunior = prompt(in, "is_junior (0/1): ") == "1"
		user.IsSenior = prompt(in, "is_senior (0/1): ") == "1"
	case entity.RoleAdmin:
		user.DisplayName = "Admin"
	}

	if err := users.Create(&user); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка создания пользователя:", err)
		os.Exit(1)
	}
	fmt.Printf("Пользователь %s (%s) создан\n", login, role)
}

func prompt(in *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}
