package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/models"
	"github.com/dmitrijs2005/passvault/internal/services"
)

// List prints all entries, or only those in the category given as the
// first argument (case-insensitive).
func (a *App) List(ctx context.Context, args []string) error {
	list, err := a.records.List(ctx)
	if err != nil {
		return err
	}

	if len(args) > 0 {
		category := strings.Join(args, " ")
		filtered := list[:0]
		for _, r := range list {
			if strings.EqualFold(r.Category, category) {
				filtered = append(filtered, r)
			}
		}
		list = filtered
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No entries.")
		return nil
	}

	fmt.Fprintln(a.out, renderRecords(list))
	return nil
}

// Add prompts for a new entry. An empty password is replaced with a
// generated one.
func (a *App) Add(ctx context.Context) error {
	var in models.RecordInput
	var err error

	if in.Name, err = GetSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	if in.URL, err = GetSimpleText(a.reader, "URL (optional)", a.out); err != nil {
		return err
	}
	if in.Username, err = GetSimpleText(a.reader, "Username", a.out); err != nil {
		return err
	}

	pw, err := GetPassword("Password (leave empty to generate)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	in.Password = string(pw)

	if in.Password == "" {
		if in.Password, err = a.records.Generate(services.DefaultGenerateLength, true); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Generated a %d character password.\n", services.DefaultGenerateLength)
	}

	if in.Notes, err = GetMultiline(a.reader, "Notes (optional)", a.out); err != nil {
		return err
	}
	if in.Category, err = GetSimpleText(a.reader, "Category ["+common.DefaultCategory+"]", a.out); err != nil {
		return err
	}

	id, err := a.records.Create(ctx, in)
	if err != nil {
		return err
	}

	a.success("Saved entry #%d.", id)
	return nil
}

// Edit prompts for every field, showing the current value. Empty answers
// keep the field as it is.
func (a *App) Edit(ctx context.Context, args []string) error {
	rec, err := a.findRecord(ctx, args)
	if err != nil {
		return err
	}

	var patch models.RecordPatch
	ask := func(label, current string, dst **string) error {
		v, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, current), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*dst = &v
		}
		return nil
	}

	if err := ask("Name", rec.Name, &patch.Name); err != nil {
		return err
	}
	if err := ask("URL", rec.URL, &patch.URL); err != nil {
		return err
	}
	if err := ask("Username", rec.Username, &patch.Username); err != nil {
		return err
	}

	pw, err := GetPassword("Password (leave empty to keep)", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)
	if len(pw) > 0 {
		s := string(pw)
		patch.Password = &s
	}

	if err := ask("Category", rec.Category, &patch.Category); err != nil {
		return err
	}

	if patch.Empty() {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if err := a.records.Update(ctx, rec.ID, patch); err != nil {
		return err
	}

	a.success("Entry #%d updated.", rec.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.recordID(args)
	if err != nil {
		return err
	}

	if !confirm(a.reader, fmt.Sprintf("Delete entry #%d?", id), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.records.Delete(ctx, id); err != nil {
		return err
	}

	a.success("Entry #%d deleted.", id)
	return nil
}

// recordID takes the id from args or, when absent, asks for it.
func (a *App) recordID(args []string) (int64, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = GetSimpleText(a.reader, "Entry ID", a.out); err != nil {
			return 0, err
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid entry id %q", common.ErrValidation, raw)
	}
	return id, nil
}

func (a *App) findRecord(ctx context.Context, args []string) (*models.RecordView, error) {
	id, err := a.recordID(args)
	if err != nil {
		return nil, err
	}

	list, err := a.records.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("entry #%d: %w", id, common.ErrorNotFound)
}
