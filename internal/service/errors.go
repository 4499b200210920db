package service

import "errors"

// Ошибки бизнес-слоя. Хендлеры маппят их в HTTP-статусы через errors.Is.
var (
	// ErrValidation — отсутствует обязательное поле запроса.
	ErrValidation = errors.New("required field missing")

	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("user already exists")

	// ErrInvalidCredentials — неверная пара email/пароль.
	// Сообщение одно для неизвестного email и неверного пароля,
	// чтобы не раскрывать существование учётной записи.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound — сущность не найдена (или, для загрузки фото, не принадлежит вызывающему).
	ErrNotFound = errors.New("not found")

	// ErrForbidden — сущность существует, но вызывающий не её владелец.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCategory — категория с указанным именем не существует.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrCategoryTaken — категория с таким именем уже есть.
	ErrCategoryTaken = errors.New("category already exists")

	// ErrNoFile — к запросу не приложен файл.
	ErrNoFile = errors.New("no file uploaded")

	// ErrUploadFailed — внешнее хранилище не приняло файл.
	ErrUploadFailed = errors.New("photo upload failed")
)
