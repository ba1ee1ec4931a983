// useradd 在命令行创建用户（可直接创建管理员）
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/repository"
	"expensetracker/service"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openDB 按配置打开数据库并迁移表结构，返回的 close 用于释放连接
var openDB = func(configPath string) (*gorm.DB, func(), error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	dialector, err := database.Dialector(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return db, func() { sqlDB.Close() }, nil
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		configPath string
		email      string
		fullName   string
		password   string
		admin      bool
	)

	cmd := &cobra.Command{
		Use:           "useradd <username>",
		Short:         "创建用户",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(stdout, "Password: ")
				var err error
				password, err = readPassword(stdin)
				if err != nil {
					return fmt.Errorf("读取密码失败: %w", err)
				}
				fmt.Fprintln(stdout)
			}

			input := service.RegisterInput{
				Username: args[0],
				Password: password,
				Email:    email,
				FullName: fullName,
				Admin:    admin,
			}
			// 连接数据库前先校验参数
			if err := input.Validate().Err(); err != nil {
				return err
			}

			db, closeDB, err := openDB(configPath)
			if err != nil {
				return err
			}
			defer closeDB()

			accounts := service.NewAccountService(repository.NewUserRepository(db))
			user, err := accounts.Register(context.Background(), input)
			if errors.Is(err, service.ErrUsernameTaken) {
				return fmt.Errorf("用户 %s 已存在", input.Username)
			}
			if err != nil {
				return fmt.Errorf("创建用户失败: %w", err)
			}

			fmt.Fprintf(stdout, "用户 %s 创建成功 (ID %d, 角色 %s)\n", user.Username, user.ID, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "外部配置文件路径（可选）")
	cmd.Flags().StringVar(&email, "email", "", "邮箱，用于接收账单提醒")
	cmd.Flags().StringVar(&fullName, "name", "", "全名")
	cmd.Flags().StringVar(&password, "password", "", "密码，省略时从终端读取")
	cmd.Flags().BoolVar(&admin, "admin", false, "创建管理员")

	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

func readPassword(stdin io.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// 非终端（管道、测试）按行读取
	scanner := bufio.NewScanner(stdin)
	if scanner.Scan() {
		return scanner.Text(), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}
