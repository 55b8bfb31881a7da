package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/profile-settings/internal/models"
)

const selectUser = `SELECT u.uid, u.email, u.username, u.password_hash, u.role, u.service_expire_at,
		COALESCE(n.enable_tg_bot, FALSE),
		COALESCE(n.tg_id, ''),
		COALESCE(n.when_service_almost_expired, TRUE),
		COALESCE(n.when_purchased, TRUE),
		COALESCE(n.when_balance_changed, TRUE)
	FROM users u
	LEFT JOIN user_notice n ON n.user_uid = u.uid`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var expire sql.NullTime
	var tgID string
	if err := row.Scan(&u.UUID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &expire,
		&u.Notice.EnableTgBot, &tgID, &u.Notice.WhenServiceAlmostExpired,
		&u.Notice.WhenPurchased, &u.Notice.WhenBalanceChanged); err != nil {
		return nil, err
	}
	u.Notice.TgID = models.TelegramID(tgID)
	if expire.Valid {
		t := expire.Time
		u.ServiceExpireAt = &t
	}
	return u, nil
}

// RegisterUser сохраняет нового пользователя с настройками уведомлений по умолчанию
// и возвращает его uid.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID string
	query := `INSERT INTO users (email, username, password_hash, role, service_expire_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING uid;`
	if err := tx.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PasswordHash, user.Role, user.ServiceExpireAt).Scan(&newID); err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return "", fmt.Errorf("%s: %w", op, models.ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO user_notice (user_uid) VALUES ($1)`, newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"

	u, err := scanUser(s.DB.QueryRowContext(ctx, selectUser+` WHERE u.username = $1`, username))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его uid.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"

	u, err := scanUser(s.DB.QueryRowContext(ctx, selectUser+` WHERE u.uid = $1`, userUID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdatePassword заменяет хэш пароля пользователя.
func (s *Storage) UpdatePassword(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePassword"

	res, err := s.DB.ExecContext(ctx, `UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE uid = $2`, passwordHash, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
	}
	return nil
}

// UpdateNotice сохраняет настройки уведомлений пользователя целиком.
func (s *Storage) UpdateNotice(ctx context.Context, userUID string, notice models.NoticeSettings) error {
	const op = "storage.UpdateNotice"

	query := `INSERT INTO user_notice (user_uid, enable_tg_bot, tg_id,
			      when_service_almost_expired, when_purchased, when_balance_changed, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW())
			  ON CONFLICT (user_uid) DO UPDATE SET
			      enable_tg_bot = EXCLUDED.enable_tg_bot,
			      tg_id = EXCLUDED.tg_id,
			      when_service_almost_expired = EXCLUDED.when_service_almost_expired,
			      when_purchased = EXCLUDED.when_purchased,
			      when_balance_changed = EXCLUDED.when_balance_changed,
			      updated_at = NOW()`
	_, err := s.DB.ExecContext(ctx, query, userUID, notice.EnableTgBot, string(notice.TgID),
		notice.WhenServiceAlmostExpired, notice.WhenPurchased, notice.WhenBalanceChanged)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return fmt.Errorf("%s: %w", op, models.ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindServiceExpiringTomorrow находит пользователей, у которых оплаченный сервис
// заканчивается завтра.
func (s *Storage) FindServiceExpiringTomorrow(ctx context.Context) ([]*models.User, error) {
	const op = "storage.FindServiceExpiringTomorrow"

	rows, err := s.DB.QueryContext(ctx, selectUser+
		` WHERE u.service_expire_at::DATE = CURRENT_DATE + INTERVAL '1 day'`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
