package database

import (
	"cognilab_backend/internal/config"
	"cognilab_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Module{},
		&model.Lesson{},
		&model.Enrollment{},
		&model.Skill{},
		&model.ModuleSkill{},
		&model.UserSkillProficiency{},
	)
	if err != nil {
		return err
	}

	// 默认技能（空库起步用）
	var count int64
	db.Model(&model.Skill{}).Count(&count)
	if count == 0 {
		defaultSkills := []model.Skill{
			{Name: "Python Basics", Description: "Python 语法与基础编程"},
			{Name: "Linear Algebra", Description: "向量、矩阵与线性变换"},
			{Name: "Neural Networks", Description: "前馈网络、反向传播与训练"},
			{Name: "Prompt Engineering", Description: "大模型提示词设计"},
		}
		for _, s := range defaultSkills {
			db.Create(&s)
		}
	}

	return nil
}
