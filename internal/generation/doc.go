// Package generation defines the boundary between the application core and
// the study-content producer. It abstracts how notes, flashcards, exam
// questions, and quizzes are derived from a lesson's classification, allowing
// the lesson service to stay decoupled from the producing backend.
package generation
