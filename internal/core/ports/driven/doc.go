// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - MorphologySource: Streams morphology records from the corpus table
//   - VerseStore: Resolves (sura, ayah) references to verse text
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These are only needed for bulk annotation:
//
//   - LLMService: Language model operations. Without it, the annotator
//     commands are disabled; extraction and location still work.
//   - AnnotationStore: Persists annotation progress for resume-safe runs.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
