package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/character"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/stats"
)

// ErrCharacterNotFound is returned when a character lookup fails.
var ErrCharacterNotFound = errors.New("character not found")

// attributeColumns fixes the column order shared by save and load.
var attributeColumns = []string{
	stats.Strength, stats.Reflex, stats.Agility, stats.Charisma,
	stats.Discipline, stats.Wisdom, stats.Intelligence, stats.Stamina,
}

// SaveCharacter writes a character snapshot, inserting on first save and
// updating after.
func (d *Database) SaveCharacter(snap character.Snapshot) error {
	name := strings.TrimSpace(snap.Name)
	if name == "" {
		return errors.New("character name cannot be empty")
	}

	groupsJSON, err := json.Marshal(snap.Groups)
	if err != nil {
		return fmt.Errorf("failed to encode skill groups: %w", err)
	}
	if snap.Groups == nil {
		groupsJSON = []byte("[]")
	}

	lastLogout := ""
	if snap.LastLogout != nil {
		lastLogout = snap.LastLogout.UTC().Format(time.RFC3339Nano)
	}
	lastSaved := time.Now().UTC().Format(time.RFC3339Nano)

	attrs := make([]any, 0, len(attributeColumns))
	for _, column := range attributeColumns {
		value, ok := snap.Attributes[column]
		if !ok {
			value = stats.BaselineAttribute
		}
		attrs = append(attrs, value)
	}

	exists, err := d.CharacterExists(name)
	if err != nil {
		return err
	}

	if exists {
		query := d.qb.Build(`UPDATE characters
			SET class = ?, level = ?, tdp_available = ?, tdp_spent = ?,
			    strength = ?, reflex = ?, agility = ?, charisma = ?,
			    discipline = ?, wisdom = ?, intelligence = ?, stamina = ?,
			    last_logout = ?, skill_groups = ?, last_saved = ?
			WHERE name = ?`)
		args := append([]any{snap.Class, snap.Level, snap.TDPAvailable, snap.TDPSpent}, attrs...)
		args = append(args, lastLogout, string(groupsJSON), lastSaved, name)
		if _, err := d.db.Exec(query, args...); err != nil {
			return fmt.Errorf("failed to update character %s: %w", name, err)
		}
		return nil
	}

	query := d.qb.Build(`INSERT INTO characters
		(name, class, level, tdp_available, tdp_spent,
		 strength, reflex, agility, charisma, discipline, wisdom, intelligence, stamina,
		 last_logout, skill_groups, last_saved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	args := append([]any{name, snap.Class, snap.Level, snap.TDPAvailable, snap.TDPSpent}, attrs...)
	args = append(args, lastLogout, string(groupsJSON), lastSaved)
	if _, err := d.db.Exec(query, args...); err != nil {
		if d.dialect.IsDuplicateKeyError(err) {
			// Lost a race with another save of the same name; the row is
			// there, so retry as an update.
			return d.SaveCharacter(snap)
		}
		return fmt.Errorf("failed to insert character %s: %w", name, err)
	}
	return nil
}

// LoadCharacter reads a character snapshot by name.
func (d *Database) LoadCharacter(name string) (character.Snapshot, error) {
	var snap character.Snapshot
	var groupsJSON, lastLogout string
	attrs := make([]int, len(attributeColumns))

	query := d.qb.Build(`SELECT name, class, level, tdp_available, tdp_spent,
		strength, reflex, agility, charisma, discipline, wisdom, intelligence, stamina,
		last_logout, skill_groups
		FROM characters WHERE name = ?`)

	dest := []any{&snap.Name, &snap.Class, &snap.Level, &snap.TDPAvailable, &snap.TDPSpent}
	for i := range attrs {
		dest = append(dest, &attrs[i])
	}
	dest = append(dest, &lastLogout, &groupsJSON)

	err := d.db.QueryRow(query, name).Scan(dest...)
	if err == sql.ErrNoRows {
		return snap, ErrCharacterNotFound
	}
	if err != nil {
		return snap, fmt.Errorf("failed to load character %s: %w", name, err)
	}

	snap.Attributes = make(map[string]int, len(attributeColumns))
	for i, column := range attributeColumns {
		snap.Attributes[column] = attrs[i]
	}

	if lastLogout != "" {
		t, err := time.Parse(time.RFC3339Nano, lastLogout)
		if err != nil {
			return snap, fmt.Errorf("corrupt last_logout for %s: %w", name, err)
		}
		snap.LastLogout = &t
	}

	if groupsJSON != "" && groupsJSON != "[]" {
		var groups []skills.GroupSnapshot
		if err := json.Unmarshal([]byte(groupsJSON), &groups); err != nil {
			return snap, fmt.Errorf("corrupt skill groups for %s: %w", name, err)
		}
		snap.Groups = groups
	}

	return snap, nil
}

// DeleteCharacter removes a character by name.
func (d *Database) DeleteCharacter(name string) error {
	query := d.qb.Build(`DELETE FROM characters WHERE name = ?`)
	result, err := d.db.Exec(query, name)
	if err != nil {
		return fmt.Errorf("failed to delete character %s: %w", name, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// CharacterExists reports whether a character with the name is stored.
func (d *Database) CharacterExists(name string) (bool, error) {
	query := d.qb.Build(`SELECT 1 FROM characters WHERE name = ?`)
	var one int
	err := d.db.QueryRow(query, name).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check character %s: %w", name, err)
	}
	return true, nil
}

// ListCharacters returns the stored character names, sorted.
func (d *Database) ListCharacters() ([]string, error) {
	rows, err := d.db.Query(`SELECT name FROM characters ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
