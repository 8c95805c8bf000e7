// Package aivi provides an offline-first study assistant. Questions are
// answered from a local knowledge base when possible, falling back to an
// online search provider and then an AI provider, and good fallback answers
// are absorbed back into the local store. A voice-style menu navigator lets
// a user browse subjects and topics with short commands.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package aivi
