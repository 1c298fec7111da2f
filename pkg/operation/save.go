package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/walteh/passages/pkg/passage"
	"github.com/walteh/passages/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 💾 Save writes every source holding a changed passage back through files.
// Sources are visited in first-seen order; unchanged sources are not touched.
// A renamed text passage is written to its new file and the old one removed.
func Save(ctx context.Context, passages *passage.Collection, files *status.Manager) ([]status.FileInfo, error) {
	logger := zerolog.Ctx(ctx)

	var written []status.FileInfo
	for _, source := range passages.Sources() {
		group := passages.BySource(source)
		if !lo.SomeBy(group, func(p *passage.Passage) bool { return p.Changed() }) {
			continue
		}

		infos, err := saveSource(ctx, files, source, group)
		if err != nil {
			return written, errors.Errorf("saving %s: %w", source, err)
		}
		written = append(written, infos...)
	}

	logger.Debug().Int("files", len(written)).Msg("saved passages")

	return written, nil
}

func saveSource(ctx context.Context, files *status.Manager, source string, group []*passage.Passage) ([]status.FileInfo, error) {
	format := group[0].Format

	target := source
	if format == passage.FormatText {
		t, err := passage.TargetPath(group[0])
		if err != nil {
			return nil, err
		}
		target = t
	}

	if target != source {
		exists, err := files.FileExists(ctx, target)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.Errorf("renaming to %s: file already exists", target)
		}
	}

	content, err := passage.Encode(format, target, group)
	if err != nil {
		return nil, errors.Errorf("encoding: %w", err)
	}

	info, err := files.WriteFile(ctx, target, content)
	if err != nil {
		return nil, err
	}
	infos := []status.FileInfo{info}

	if target != source {
		if err := files.DeleteFile(ctx, source); err != nil {
			return infos, err
		}
		removed, err := files.GetFileInfo(ctx, source)
		if err != nil {
			return infos, err
		}
		infos = append(infos, removed)

		for _, p := range group {
			p.Source = target
		}
	}

	for _, p := range group {
		p.MarkSaved()
	}

	return infos, nil
}
