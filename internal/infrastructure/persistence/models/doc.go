// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// of ORM concerns. Each model offers FromDomain and ToDomain mappers and the
// repositories in the parent package only ever read and write models.
package models
