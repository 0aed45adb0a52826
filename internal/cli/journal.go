package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/toheart/dumpy/domain"
	"github.com/toheart/dumpy/domain/model"
)

// journalDocuments saves every rendered document under one session id.
func journalDocuments(repo domain.DumpRepository, session string, docs []*document, log *logrus.Logger) error {
	for _, doc := range docs {
		record := model.NewDumpRecord(session, doc.name, doc.output, doc.options)
		id, err := repo.SaveDump(record)
		if err != nil {
			return fmt.Errorf("journal %s: %w", doc.name, err)
		}
		log.WithFields(logrus.Fields{
			"id":      id,
			"session": session,
			"source":  doc.name,
		}).Debug("dump journaled")
	}
	log.WithField("session", session).Infof("journaled %d dump(s)", len(docs))
	return nil
}
