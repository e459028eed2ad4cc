package dto

type NewTodoDTO struct {
	Text string `form:"Text" binding:"required"`
}

type UpdateTodoDTO struct {
	Text string `form:"Text" binding:"required"`
}
