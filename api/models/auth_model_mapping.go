package models

import db "github.com/yacinecs/wallet-backend/db/sqlc"

func (u UserResponse) ToUserResponse(user *db.User) *UserResponse {
	return &UserResponse{
		ID:        ID(user.ID),
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
